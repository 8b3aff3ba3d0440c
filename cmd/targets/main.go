package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	"github.com/vladimiradmaev/fittrack/internal/services"
)

func newRootCmd() *cobra.Command {
	var metrics services.BodyMetrics
	var sex, activity, goal string

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Compute daily calorie and macro targets",
		Long:  "targets prints the daily energy expenditure and macro split for a body profile.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics.Sex = domain.Sex(sex)
			metrics.ActivityLevel = domain.ActivityLevel(activity)
			metrics.Goal = domain.Goal(goal)

			profile, err := metrics.Profile()
			if err != nil {
				return err
			}
			bmr, err := services.BMR(profile)
			if err != nil {
				return err
			}
			tdee, err := services.TDEE(profile)
			if err != nil {
				return err
			}
			targets, err := services.ComputeDailyTargets(profile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "BMR\t%.0f kcal\n", bmr)
			fmt.Fprintf(out, "TDEE\t%.0f kcal\n", tdee)
			fmt.Fprintf(out, "TARGET\t%.0f kcal\n", targets.Calories)
			fmt.Fprintf(out, "PROTEIN\t%.0f g\n", targets.Protein)
			fmt.Fprintf(out, "CARBS\t%.0f g\n", targets.Carbs)
			fmt.Fprintf(out, "FAT\t%.0f g\n", targets.Fat)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&metrics.Weight, "weight", 0, "Body weight")
	flags.StringVar(&metrics.WeightUnit, "weight-unit", "kg", "Weight unit (kg|lb)")
	flags.Float64Var(&metrics.Height, "height", 0, "Body height")
	flags.StringVar(&metrics.HeightUnit, "height-unit", "cm", "Height unit (cm|in)")
	flags.IntVar(&metrics.AgeYears, "age", 0, "Age in years")
	flags.StringVar(&sex, "sex", "", "male|female")
	flags.StringVar(&activity, "activity", string(domain.ActivitySedentary), "sedentary|light|moderate|active|veryActive")
	flags.StringVar(&goal, "goal", string(domain.GoalMaintenance), "weightLoss|maintenance|muscleGain")
	for _, name := range []string{"weight", "height", "age", "sex"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
