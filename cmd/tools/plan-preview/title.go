package main

import (
	"fmt"

	"thenetwork-workers/internal/models"
	"thenetwork-workers/internal/planning/titles"

	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Print the plan title for a context",
	RunE: func(cmd *cobra.Command, _ []string) error {
		activity, _ := cmd.Flags().GetString("activity")
		interests, _ := cmd.Flags().GetStringSlice("interests")
		venue, _ := cmd.Flags().GetString("venue")
		invitee, _ := cmd.Flags().GetString("invitee")
		school, _ := cmd.Flags().GetString("school")
		city, _ := cmd.Flags().GetString("city")

		title := titles.Generate(titles.Context{
			ActivityType:    models.ActivityType(activity),
			SharedInterests: interests,
			VenueName:       venue,
			InviteeName:     invitee,
			InviteeSchool:   school,
			City:            city,
		})
		fmt.Fprintln(cmd.OutOrStdout(), title)
		return nil
	},
}

func init() {
	titleCmd.Flags().String("activity", string(models.ActivityCoffee), "activity type")
	titleCmd.Flags().StringSlice("interests", nil, "shared interests (comma-separated)")
	titleCmd.Flags().String("venue", "", "venue name")
	titleCmd.Flags().String("invitee", "", "invitee full name")
	titleCmd.Flags().String("school", "", "invitee school")
	titleCmd.Flags().String("city", "", "city")

	rootCmd.AddCommand(titleCmd)
}
