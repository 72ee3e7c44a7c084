// internal/workers/planning/generate-plan-title/models.go
package generateplantitle

import "thenetwork-workers/internal/planning/titles"

type Input = titles.Context

type Output struct {
	Title string `json:"title"`
}
