// Package titles builds short, deterministic plan titles from the plan's
// activity, shared interests and participants.
package titles

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"thenetwork-workers/internal/models"

	"github.com/cespare/xxhash/v2"
)

// MaxInterests is how many shared interests a title considers.
const MaxInterests = 3

const genericTitle = "Let's meet up"

// Context is everything a title may draw on. All fields are optional.
type Context struct {
	ActivityType    models.ActivityType `json:"activityType"`
	SharedInterests []string            `json:"sharedInterests"`
	VenueName       string              `json:"venueName,omitempty"`
	InviteeName     string              `json:"inviteeName,omitempty"`
	InviteeSchool   string              `json:"inviteeSchool,omitempty"`
	City            string              `json:"city,omitempty"`
}

// NormalizeInterests lower-cases, trims and de-duplicates interests, keeping
// the first MaxInterests in their original order.
func NormalizeInterests(in []string) []string {
	out := make([]string, 0, MaxInterests)
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == MaxInterests {
			break
		}
	}
	return out
}

type fields struct {
	activity  models.ActivityType
	interests []string
	venue     string
	invitee   string
	school    string
}

func (f fields) primary() string {
	if len(f.interests) > 0 {
		return f.interests[0]
	}
	return ""
}

func (f fields) secondary() string {
	if len(f.interests) > 1 {
		return f.interests[1]
	}
	return ""
}

func prepare(ctx Context) fields {
	activity := models.ActivityType(strings.ToLower(strings.TrimSpace(string(ctx.ActivityType))))
	return fields{
		activity:  activity,
		interests: NormalizeInterests(ctx.SharedInterests),
		venue:     strings.TrimSpace(ctx.VenueName),
		invitee:   firstName(ctx.InviteeName),
		school:    strings.TrimSpace(ctx.InviteeSchool),
	}
}

func firstName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// pool returns the candidate templates for f: the activity's templates, then
// contextual ones. Templates whose placeholders cannot be filled are left out.
func pool(f fields) []string {
	base, ok := activityTemplates[f.activity]
	if !ok {
		base = activityTemplates[models.ActivityCoffee]
	}

	out := make([]string, 0, len(base)+4)
	for _, tpl := range base {
		if strings.Contains(tpl, "{interest}") && f.primary() == "" {
			continue
		}
		out = append(out, tpl)
	}
	if f.invitee != "" {
		out = append(out, inviteeTemplate)
	}
	if f.venue != "" {
		out = append(out, venueTemplate)
	}
	if f.school != "" {
		out = append(out, schoolTemplate)
	}
	if f.secondary() != "" {
		out = append(out, secondaryTemplate)
	}
	return out
}

// seed hashes the fields that identify a plan. The unit separator keeps
// ("ab", "c") and ("a", "bc") apart.
func seed(f fields) uint64 {
	return xxhash.Sum64String(strings.Join([]string{f.venue, f.primary(), f.invitee, string(f.activity)}, "\x1f"))
}

func label(activity models.ActivityType) string {
	if l, ok := activityLabels[activity]; ok {
		return l
	}
	return activityLabels[models.ActivityCoffee]
}

func render(tpl string, f fields) string {
	return strings.NewReplacer(
		"{activity}", label(f.activity),
		"{interest2}", f.secondary(),
		"{interest}", f.primary(),
		"{venue}", f.venue,
		"{invitee}", f.invitee,
		"{school}", f.school,
	).Replace(tpl)
}

// Generate returns the title for ctx. The same Context always yields the same
// title, and the result is never shorter than three characters.
func Generate(ctx Context) string {
	f := prepare(ctx)
	templates := pool(f)
	tpl := templates[seed(f)%uint64(len(templates))]

	title := render(tpl, f)
	if f.venue != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(f.venue)) {
		title += " at " + f.venue
	}
	return polish(title, f)
}

func polish(title string, f fields) string {
	title = dropAdjacentDuplicates(title)
	tokens := append([]string{string(f.activity)}, f.interests...)
	title = collapseRepeatedTokens(title, tokens)
	title = capitalize(strings.Join(strings.Fields(title), " "))

	if utf8.RuneCountInString(title) >= 3 {
		return title
	}
	return fallback(f)
}

func fallback(f fields) string {
	switch {
	case f.venue != "":
		return "Meet at " + f.venue
	case f.primary() != "":
		return "Connect over " + f.primary()
	case f.invitee != "":
		return "Meet " + f.invitee
	default:
		return genericTitle
	}
}

func stripPunct(word string) string {
	return strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}))
}

// dropAdjacentDuplicates removes a word equal to its predecessor, ignoring
// case and surrounding punctuation.
func dropAdjacentDuplicates(s string) string {
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(out) > 0 {
			prev, cur := stripPunct(out[len(out)-1]), stripPunct(w)
			if cur != "" && cur == prev {
				continue
			}
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

var connectors = `(?:and|&|\+|with|over|at)`

// collapseRepeatedTokens turns "music and music" into "music" for each token.
func collapseRepeatedTokens(s string, tokens []string) string {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		q := regexp.QuoteMeta(tok)
		re := regexp.MustCompile(`(?i)\b(` + q + `)\s+` + connectors + `\s+` + q + `\b`)
		s = re.ReplaceAllString(s, "$1")
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
