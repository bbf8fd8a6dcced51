package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"worklog/internal/bootstrap"
	calendardto "worklog/internal/modules/calendar/dto"
	reportdto "worklog/internal/modules/report/dto"
	"worklog/internal/platform/config"
	"worklog/internal/platform/day"
)

var categoryOrder = []string{"research", "study", "material_prep", "other", "break"}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir string
	userID  string
	channel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Work session and study log tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data", defaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&flags.userID, "user", defaultUserID(), "acting user id")
	root.PersistentFlags().StringVar(&flags.channel, "channel", "cli", "channel the command acts in")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newNoteCmd(flags))
	root.AddCommand(newManualCmd(flags))
	root.AddCommand(newLogCmd(flags))
	root.AddCommand(newChartCmd(flags))
	root.AddCommand(newCalendarCmd(flags))
	root.AddCommand(newPluginCmd(flags))
	root.AddCommand(newDaemonCmd(flags))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".worklog"
	}
	return filepath.Join(home, ".worklog")
}

func defaultUserID() string {
	u, err := user.Current()
	if err != nil {
		return "local"
	}
	return u.Username
}

func loadApp(flags *rootFlags) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(flags.dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

func today(cfg config.Config) string {
	return day.Of(time.Now(), cfg.Location)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the worklog terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app, flags.userID, flags.channel)
		},
	}
}

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Work session lifecycle"}

	var category string
	start := &cobra.Command{
		Use:   "start --category <category>",
		Short: "Start working",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Start(context.Background(), flags.userID, flags.channel, category)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session started: %s category=%s at=%s\n",
				out.ID, out.Category, out.StartedAt.Format(time.RFC3339))
			return nil
		},
	}
	start.Flags().StringVar(&category, "category", "study", "work category: research|study|material_prep|other")

	session.AddCommand(start)
	session.AddCommand(&cobra.Command{
		Use:   "break",
		Short: "Start a break",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Break(context.Background(), flags.userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "on break since %s\n", out.BreakStartedAt.Format(time.RFC3339))
			return nil
		},
	})
	session.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume working after a break",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Resume(context.Background(), flags.userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "back to work: category=%s worked=%s\n", out.Category, out.Worked)
			return nil
		},
	})
	session.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.End(context.Background(), flags.userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: worked=%s this week=%s\n",
				out.Worked.Round(time.Minute), out.WeekWorked.Round(time.Minute))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "note window open for 10 minutes: worklog note <text>")
			return nil
		},
	})
	session.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the live session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.Status(context.Background(), flags.userID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "state=%s category=%s started=%s worked=%s\n",
				out.State, out.Category, out.StartedAt.Format(time.RFC3339), out.Worked.Round(time.Minute))
			if out.State == "on_break" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "on break since %s\n", out.BreakStartedAt.Format(time.RFC3339))
			}
			return nil
		},
	})
	return session
}

func newNoteCmd(flags *rootFlags) *cobra.Command {
	note := &cobra.Command{
		Use:   "note <text>",
		Short: "Record a study-log note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.JournalCLI.Note(context.Background(), flags.userID, flags.channel, strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "noted for %s (%d fragments)\n", out.Date, len(out.Fragments))
			return nil
		},
	}

	var date string
	show := &cobra.Command{
		Use:   "show",
		Short: "Show a day's note",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cfg, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if date == "" {
				date = today(cfg)
			}
			out, err := app.JournalCLI.Show(context.Background(), flags.userID, date)
			if err != nil {
				return err
			}
			if out.Text == "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no note for %s\n", date)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
	show.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	note.AddCommand(show)
	return note
}

func newManualCmd(flags *rootFlags) *cobra.Command {
	var date, start, end, category string
	manual := &cobra.Command{
		Use:   "manual --date <date> --start <hh:mm> --end <hh:mm> --category <category>",
		Short: "Record a work interval by hand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if start == "" || end == "" {
				return fmt.Errorf("--start and --end are required")
			}
			app, cfg, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if date == "" {
				date = today(cfg)
			}
			out, err := app.IntervalCLI.RecordManual(context.Background(), flags.userID, date, start, end, category)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s %s-%s %s\n",
				out.Interval.Date, start, end, out.Interval.Category)
			for _, warning := range out.Warnings {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "warning: overlaps %s %s-%s (%s)\n",
					warning.Date, warning.Start, warning.End, warning.Category)
			}
			return nil
		},
	}
	manual.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	manual.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	manual.Flags().StringVar(&end, "end", "", "end time (HH:MM)")
	manual.Flags().StringVar(&category, "category", "study", "work category: research|study|material_prep|other")
	return manual
}

func newLogCmd(flags *rootFlags) *cobra.Command {
	var date string
	log := &cobra.Command{
		Use:   "log",
		Short: "Show a day's report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if date == "" {
				date = today(cfg)
			}
			report, err := app.ReportCLI.Daily(context.Background(), flags.userID, date)
			if err != nil {
				return err
			}
			printDaily(cmd, report)
			return nil
		},
	}
	log.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")

	var anchor string
	week := &cobra.Command{
		Use:   "week",
		Short: "Show the week's report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if anchor == "" {
				anchor = today(cfg)
			}
			report, err := app.ReportCLI.Weekly(context.Background(), flags.userID, anchor)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "week of %s: worked %s\n", report.WeekStart, report.Worked.Round(time.Minute))
			for _, category := range categoryOrder {
				if total, ok := report.Totals[category]; ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\n", category, total.Round(time.Minute))
				}
			}
			for _, dayReport := range report.Days {
				worked := time.Duration(0)
				for category, total := range dayReport.Totals {
					if category != "break" {
						worked += total
					}
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", dayReport.Date, worked.Round(time.Minute))
			}
			return nil
		},
	}
	week.Flags().StringVar(&anchor, "anchor", "", "any date inside the week (YYYY-MM-DD, default today)")
	log.AddCommand(week)
	return log
}

func printDaily(cmd *cobra.Command, report reportdto.DailyReport) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", report.Date)
	if len(report.Spans) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no recorded work")
		return
	}
	for _, span := range report.Spans {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s-%s\t%s\n",
			span.Start.Format("15:04"), span.End.Format("15:04"), span.Category)
	}
	for _, category := range categoryOrder {
		if total, ok := report.Totals[category]; ok {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\n", category, total.Round(time.Minute))
		}
	}
	if report.Note != "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), report.Note)
	}
}

func newChartCmd(flags *rootFlags) *cobra.Command {
	var anchor, pngPath string
	var width int
	chart := &cobra.Command{
		Use:   "chart",
		Short: "Render the weekly timeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if anchor == "" {
				anchor = today(cfg)
			}
			if pngPath != "" {
				image, err := app.TimelineCLI.PNG(context.Background(), flags.userID, anchor)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, image, 0o644); err != nil {
					return fmt.Errorf("write chart: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", pngPath, len(image))
				return nil
			}
			layout, err := app.TimelineCLI.Week(context.Background(), flags.userID, anchor)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "week of %s\n", layout.WeekStart)
			_, _ = fmt.Fprint(cmd.OutOrStdout(), bootstrap.RenderTimeline(layout, width))
			return nil
		},
	}
	chart.Flags().StringVar(&anchor, "anchor", "", "any date inside the week (YYYY-MM-DD, default today)")
	chart.Flags().StringVar(&pngPath, "png", "", "write a PNG through the render plugin instead of drawing in the terminal")
	chart.Flags().IntVar(&width, "width", 72, "terminal chart width in cells")
	return chart
}

func newCalendarCmd(flags *rootFlags) *cobra.Command {
	calendar := &cobra.Command{Use: "calendar", Short: "Shared event calendar"}

	var grade, title, date, startTime, endTime, locationType, locationDetail string
	add := &cobra.Command{
		Use:   "add --grade <grade> --title <title> --date <date>",
		Short: "Register an event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.CalendarCLI.Register(context.Background(), calendardto.RegisterEventInput{
				Grade:          grade,
				Title:          title,
				Date:           date,
				StartTime:      startTime,
				EndTime:        endTime,
				LocationType:   locationType,
				LocationDetail: locationDetail,
				CreatedBy:      flags.userID,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "event registered: %s [%s] %s %s\n", out.ID, out.Grade, out.Date, out.Title)
			return nil
		},
	}
	add.Flags().StringVar(&grade, "grade", "", "grade: B4|M1|M2|D|ALL")
	add.Flags().StringVar(&title, "title", "", "event title")
	add.Flags().StringVar(&date, "date", "", "event date (YYYY-MM-DD)")
	add.Flags().StringVar(&startTime, "start", "", "start time (HH:MM, optional)")
	add.Flags().StringVar(&endTime, "end", "", "end time (HH:MM, optional)")
	add.Flags().StringVar(&locationType, "location", "", "location type: online|onsite")
	add.Flags().StringVar(&locationDetail, "detail", "", "location detail")
	calendar.AddCommand(add)

	var listGrade, listFrom string
	var listDays int
	list := &cobra.Command{
		Use:   "list",
		Short: "List upcoming events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if listFrom == "" {
				listFrom = today(cfg)
			}
			events, err := app.CalendarCLI.List(context.Background(), listGrade, listFrom, listDays)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no events")
				return nil
			}
			for _, event := range events {
				line := fmt.Sprintf("%s\t[%s]\t%s\t%s", event.ID, event.Grade, event.Date, event.Title)
				if event.StartTime != "" {
					line += "\t" + event.StartTime
					if event.EndTime != "" {
						line += "-" + event.EndTime
					}
				}
				if event.LocationType != "" {
					line += "\t" + event.LocationType
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listGrade, "grade", "", "grade filter (empty for all)")
	list.Flags().StringVar(&listFrom, "from", "", "first date (YYYY-MM-DD, default today)")
	list.Flags().IntVar(&listDays, "days", 14, "days to cover")
	calendar.AddCommand(list)

	var eventID string
	remove := &cobra.Command{
		Use:   "remove --id <id>",
		Short: "Remove an event you registered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(eventID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.CalendarCLI.Remove(context.Background(), eventID, flags.userID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "event removed: %s\n", eventID)
			return nil
		},
	}
	remove.Flags().StringVar(&eventID, "id", "", "event id")
	calendar.AddCommand(remove)
	return calendar
}

func newPluginCmd(flags *rootFlags) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Notification and render plugins"}
	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugin manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			plugins, err := app.NotifyCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(plugins) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, p := range plugins {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t capabilities=%s binary=%s\n",
					p.Name, p.Version, p.Enabled, strings.Join(p.Capabilities, ","), p.Binary)
			}
			return nil
		},
	})
	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate plugin checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			results, err := app.NotifyCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t",
					r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})
	return plugin
}

func newDaemonCmd(flags *rootFlags) *cobra.Command {
	daemon := &cobra.Command{Use: "daemon", Short: "Manage the reminder daemon"}

	daemon.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run the reminder daemon in the foreground",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := app.DaemonStore.WritePID(ctx, os.Getpid()); err != nil {
				return err
			}
			defer func() { _ = app.DaemonStore.ClearPID(context.Background()) }()
			return app.Daemon.Run(ctx)
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start the reminder daemon in the background",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			ctx := context.Background()
			if pid, alive := app.DaemonStore.Running(ctx); alive {
				return fmt.Errorf("daemon already running (pid %d)", pid)
			}
			exe, err := os.Executable()
			if err != nil {
				return err
			}
			logPath := app.DaemonStore.LogPath()
			if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
				return err
			}
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return err
			}
			defer func() { _ = logFile.Close() }()
			child := exec.Command(exe, "daemon", "run", "--data", flags.dataDir)
			child.Stdout = logFile
			child.Stderr = logFile
			if err := child.Start(); err != nil {
				return fmt.Errorf("start daemon: %w", err)
			}
			if err := app.DaemonStore.WritePID(ctx, child.Process.Pid); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daemon started (pid %d)\n", child.Process.Pid)
			return nil
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop the reminder daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.DaemonStore.Stop(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon stopped")
			return nil
		},
	})
	daemon.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			pid, alive := app.DaemonStore.Running(context.Background())
			if !alive {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon not running")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "daemon running (pid %d) log=%s\n", pid, app.DaemonStore.LogPath())
			return nil
		},
	})
	return daemon
}
