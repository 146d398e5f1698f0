package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var (
	userEmail    string
	userRole     string
	userLinkedIn string
	userYes      bool
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account, prompting for the password",
	RunE:  runUserAdd,
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an account with its analyses and applications",
	RunE:  runUserDelete,
}

func init() {
	userAddCmd.Flags().StringVar(&userEmail, "email", "", "Account email")
	userAddCmd.Flags().StringVar(&userRole, "role", "job-seeker", "Account role: job-seeker or hr")
	userAddCmd.Flags().StringVar(&userLinkedIn, "linkedin", "", "LinkedIn profile URL (optional)")
	_ = userAddCmd.MarkFlagRequired("email")

	userDeleteCmd.Flags().StringVar(&userEmail, "email", "", "Account email")
	userDeleteCmd.Flags().StringVar(&userRole, "role", "job-seeker", "Account role: job-seeker or hr")
	userDeleteCmd.Flags().BoolVarP(&userYes, "yes", "y", false, "Skip the confirmation prompt")
	_ = userDeleteCmd.MarkFlagRequired("email")

	userCmd.AddCommand(userAddCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

// passwordPrompt asks for a masked password of at least 8 characters.
var passwordPrompt = func() (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(s string) error {
			if len(s) < 8 {
				return errors.New("password must be at least 8 characters")
			}
			return nil
		},
	}
	return prompt.Run()
}

// confirmPrompt asks a yes/no question; a "no" answer is returned as
// promptui.ErrAbort.
var confirmPrompt = func(label string) error {
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := prompt.Run()
	return err
}

func runUserAdd(cmd *cobra.Command, _ []string) error {
	role, ok := types.ParseRole(userRole)
	if !ok {
		return fmt.Errorf("unknown role %q (use job-seeker or hr)", userRole)
	}

	req := &types.RegisterRequest{Email: userEmail, LinkedInURL: userLinkedIn}
	req.Normalize()
	linkedIn, err := types.NormalizeLinkedInURL(req.LinkedInURL)
	if err != nil {
		return errors.New(types.MessageInvalidLinkedIn)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}
	passwords, err := cfg.PasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	req.Password, err = passwordPrompt()
	if err != nil {
		return fmt.Errorf("password prompt aborted: %w", err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid account details: %w", err)
	}

	hash, err := passwords.HashPassword(req.Password)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	user, err := database.CreateUser(ctx, db.UserCreateInput{
		Email:        req.Email,
		Role:         string(role),
		PasswordHash: hash,
		LinkedInURL:  types.OptionalString(linkedIn),
	})
	if err != nil {
		if errors.Is(err, db.ErrUserExists) {
			return fmt.Errorf("a %s account for %s already exists", role.Label(), req.Email)
		}
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s account %s (%s)\n", role.Label(), user.Email, user.ID)
	return nil
}

func runUserDelete(cmd *cobra.Command, _ []string) error {
	role, ok := types.ParseRole(userRole)
	if !ok {
		return fmt.Errorf("unknown role %q (use job-seeker or hr)", userRole)
	}
	email := types.NormalizeEmail(userEmail)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	user, err := database.GetUserByEmailAndRole(ctx, email, string(role))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no %s account for %s", role.Label(), email)
	}

	if !userYes {
		if err := confirmPrompt(fmt.Sprintf("Delete %s account %s and all its records", role.Label(), email)); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			return err
		}
	}

	if err := database.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s account %s (%s)\n", role.Label(), user.Email, user.ID)
	return nil
}
