package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spendy-app/spendy/internal/cli"
	"github.com/spendy-app/spendy/internal/common"
	"github.com/spendy-app/spendy/internal/persona"
	"github.com/spendy-app/spendy/internal/tui"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved analysis snapshots",
		Long:  `List, view, delete and interactively browse the snapshots saved with 'spendy analyze --finish'.`,
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyViewCmd())
	cmd.AddCommand(historyDeleteCmd())
	cmd.AddCommand(historyBrowseCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := requireUser(ctx, store)
			if err != nil {
				return err
			}

			snapshots, err := store.ListSnapshots(ctx, user.ID)
			if err != nil {
				return err
			}
			if len(snapshots) == 0 {
				fmt.Println(cli.InfoStyle.Render("저장된 분석이 없습니다."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t날짜\t페르소나\t기록 수")
			for _, snap := range snapshots {
				profile := persona.Lookup(snap.Persona)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					snap.ID,
					snap.CreatedAt.Local().Format("2006-01-02 15:04"),
					profile.Name,
					len(snap.Records))
			}
			return w.Flush()
		},
	}
}

func historyViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [id]",
		Short: "Show one snapshot's frozen analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := requireUser(ctx, store)
			if err != nil {
				return err
			}

			snapshots, err := store.ListSnapshots(ctx, user.ID)
			if err != nil {
				return err
			}

			for _, snap := range snapshots {
				if snap.ID != args[0] {
					continue
				}
				fmt.Println(cli.TitleStyle.Render(snap.CreatedAt.Local().Format("2006-01-02 15:04 분석")))
				fmt.Println(cli.BoxStyle.Render(cli.RenderAnalysis(cli.FrozenAnalysis(snap))))
				return nil
			}

			return fmt.Errorf("%w: snapshot %s", common.ErrNotFound, args[0])
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := requireUser(ctx, store)
			if err != nil {
				return err
			}

			if err := store.DeleteSnapshot(ctx, user.ID, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("분석 기록을 삭제했습니다."))
			return nil
		},
	}
}

func historyBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse snapshots interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			user, err := requireUser(ctx, store)
			if err != nil {
				return err
			}

			return tui.Run(ctx, store, user.ID)
		},
	}
}
