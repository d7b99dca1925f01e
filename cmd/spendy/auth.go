package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spendy-app/spendy/internal/cli"
	"github.com/spendy-app/spendy/internal/service"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage your spendy account",
		Long:  `Sign up, log in and out of the user directory, and check who is logged in.`,
	}

	cmd.AddCommand(signUpCmd())
	cmd.AddCommand(loginCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(statusCmd())

	return cmd
}

func signUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Register a new nickname",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			dir, err := initDirectory(ctx)
			if err != nil {
				return err
			}

			nickname, secret, err := promptCredentials(ctx)
			if err != nil {
				return err
			}

			result, err := dir.SignUp(ctx, nickname, secret)
			if err != nil {
				return err
			}

			printAuthResult(result)
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in with your nickname",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			dir, err := initDirectory(ctx)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			nickname, secret, err := promptCredentials(ctx)
			if err != nil {
				return err
			}

			result, err := dir.Login(ctx, nickname, secret)
			if err != nil {
				return err
			}

			printAuthResult(result)
			if !result.Success || result.User == nil {
				return nil
			}

			// Remember the session so later commands know whose
			// namespace to use.
			if err := store.SetCurrentUser(ctx, *result.User); err != nil {
				return fmt.Errorf("failed to persist login: %w", err)
			}
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearCurrentUser(ctx); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("로그아웃 되었습니다."))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := store.GetCurrentUser(ctx)
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Println(cli.InfoStyle.Render("로그인되어 있지 않습니다."))
				return nil
			}

			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("로그인됨: %s", user.Nickname)))
			return nil
		},
	}
}

func promptCredentials(ctx context.Context) (nickname, secret string, err error) {
	reader := cli.NewNonBlockingReader(os.Stdin)

	fmt.Print("닉네임: ")
	nickname, err = reader.ReadLine(ctx)
	if err != nil {
		return "", "", err
	}

	fmt.Print("비밀번호: ")
	secret, err = reader.ReadLine(ctx)
	if err != nil {
		return "", "", err
	}

	return nickname, secret, nil
}

func printAuthResult(result service.AuthResult) {
	if result.Success {
		fmt.Println(cli.SuccessStyle.Render(result.Message))
	} else {
		fmt.Println(cli.WarningStyle.Render(result.Message))
	}
}
