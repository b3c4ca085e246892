// Package main provides the player entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/oddeko/tunebox/internal/app/filter"
	"github.com/oddeko/tunebox/internal/app/notification"
	"github.com/oddeko/tunebox/internal/app/playback"
	"github.com/oddeko/tunebox/internal/domain/playlist"
	"github.com/oddeko/tunebox/internal/infra/audio"
	"github.com/oddeko/tunebox/internal/infra/config"
	"github.com/oddeko/tunebox/internal/infra/logger"
)

var (
	app        = kingpin.New("tunebox", "tunebox local music player")
	configPath = app.Flag("config", "Path to config file").
			Default(filepath.Join(xdg.ConfigHome, "tunebox", "player.yaml")).String()
	verbose = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile = app.Flag("logfile", "Path to log file (default: stdout)").String()

	// list-filters command
	listFiltersCmd = app.Command("list-filters", "List available admission filters and exit")

	// play command (default)
	playCmd   = app.Command("play", "Queue the given media and start the interactive prompt").Default()
	playFiles = playCmd.Arg("media", "Media files, .m3u playlists or directories").Strings()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == listFiltersCmd.FullCommand() {
		printFilters()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		kingpin.Fatalf("failed to load config: %v", err)
	}

	loggerConfig := logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
	}
	// Override with command-line flags if specified
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		kingpin.Fatalf("failed to initialize logger: %v", err)
	}

	if err := run(cfg, *playFiles); err != nil {
		zlog.Error().Msgf("player error: %v", err)
		os.Exit(1)
	}
}

// run executes the main player logic. Using a separate function ensures
// defer statements run even when returning with an error.
func run(cfg *config.Config, media []string) error {
	if cfg.Audio.Output.Type != "beep" {
		return fmt.Errorf("unsupported audio output type: %s", cfg.Audio.Output.Type)
	}

	out, err := audio.NewOutput(cfg.Audio.Output.Settings)
	if err != nil {
		return fmt.Errorf("failed to open audio output: %w", err)
	}
	defer out.Close()

	chain, err := buildFilterChain(cfg)
	if err != nil {
		return fmt.Errorf("invalid filter config: %w", err)
	}

	player := playback.New(out, playback.Config{Admission: chain})
	player.SetVolume(cfg.Playback.InitialVolume)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Event fan-out
	notifier := notification.NewManager()
	notifier.Subscribe(notification.LogSubscriber{})
	if cfg.Notify.Desktop {
		notifier.Subscribe(notification.DesktopSubscriber{AppName: "tunebox"})
	}
	go notifier.Run(ctx, player.Events())

	// Progress accounting runs until shutdown
	tick := time.Duration(cfg.Playback.TickIntervalMs) * time.Millisecond
	player.StartPolling(ctx, tick)

	defer player.Close()

	if n := player.AddAll(expandMedia(media)); len(media) > 0 {
		zlog.Info().Msgf("queued %d track(s)", n)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	lineCh := make(chan string)
	go readLines(lineCh)

	fmt.Println("tunebox ready. Type 'help' for commands.")
	for {
		fmt.Print("> ")
		select {
		case <-sigCh:
			fmt.Println()
			zlog.Info().Msg("shutting down")
			return nil
		case line, ok := <-lineCh:
			if !ok {
				return nil
			}
			if quit := dispatch(player, line); quit {
				return nil
			}
		}
	}
}

// readLines feeds stdin lines to ch, closing it on EOF.
func readLines(ch chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		ch <- scanner.Text()
	}
	close(ch)
}

// dispatch executes one prompt command. Returns true to quit.
func dispatch(player *playback.Player, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "add":
		if len(args) == 0 {
			fmt.Println("usage: add <path>...")
			return false
		}
		fmt.Printf("queued %d track(s)\n", player.AddAll(expandMedia(args)))
	case "once":
		if len(args) != 1 {
			fmt.Println("usage: once <path>")
			return false
		}
		if !player.AddToList(args[0], true) {
			fmt.Println("add failed")
		}
	case "play":
		player.Play()
	case "pause":
		player.Pause()
	case "resume":
		player.Resume()
	case "stop":
		player.Stop()
	case "next":
		if !player.Next() {
			fmt.Println("nothing to skip to")
		} else {
			player.Play()
		}
	case "status":
		printStatus(player)
	case "vol":
		if len(args) == 0 {
			fmt.Printf("volume: %.2f\n", player.Volume())
			return false
		}
		level, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Println("usage: vol [0.0-1.0]")
			return false
		}
		player.SetVolume(level)
	case "help":
		printHelp()
	case "quit", "exit":
		return true
	default:
		fmt.Printf("unknown command: %s (try 'help')\n", cmd)
	}
	return false
}

func printStatus(player *playback.Player) {
	it, ok := player.PlayingSong()
	if !ok {
		fmt.Println("idle: playlist is empty")
		return
	}
	current, total := player.Progress()
	fmt.Printf("%s [%s] %s / %s (%d queued)\n",
		it.Track.DisplayName(), it.Status.Kind,
		formatDuration(current), formatDuration(total),
		len(player.Playlist()))
}

func printHelp() {
	fmt.Println(`commands:
  add <path>...   queue files, .m3u playlists or directories
  once <path>     play now, replacing the queue
  play            start/resume playback
  pause           pause, keeping position
  resume          continue a paused track
  stop            halt the sink
  next            skip to the next track
  status          show the current track and progress
  vol [level]     show or set volume (0.0-1.0)
  quit            exit`)
}

// formatDuration renders a duration as mm:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// expandMedia resolves directories and .m3u playlists into file paths.
func expandMedia(args []string) []string {
	var paths []string
	for _, arg := range args {
		switch {
		case strings.EqualFold(filepath.Ext(arg), ".m3u"):
			c, err := playlist.LoadM3U(arg)
			if err != nil {
				zlog.Warn().Msgf("skipping playlist %s: %v", arg, err)
				continue
			}
			paths = append(paths, c.Paths...)
		case isDir(arg):
			c, err := playlist.FromDir(arg, audio.SupportedExtensions)
			if err != nil {
				zlog.Warn().Msgf("skipping dir %s: %v", arg, err)
				continue
			}
			paths = append(paths, c.Paths...)
		default:
			paths = append(paths, arg)
		}
	}
	return paths
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// buildFilterChain creates the admission chain from config.
func buildFilterChain(cfg *config.Config) (*filter.Chain, error) {
	registry := filter.GetRegistered()
	chain := filter.NewChain()

	for filterName, filterCfg := range cfg.Filters {
		if !filterCfg.Enabled {
			continue
		}

		factory, exists := registry[filterName]
		if !exists {
			return nil, fmt.Errorf("unknown filter: %s", filterName)
		}

		f := factory()
		if err := f.ValidateConfig(filterCfg.Settings); err != nil {
			return nil, fmt.Errorf("filter %s: %w", filterName, err)
		}
		chain.Add(f)
	}

	return chain, nil
}

// printFilters prints available filters.
func printFilters() {
	fmt.Println("Available Filters:")
	for _, factory := range filter.GetRegistered() {
		f := factory()
		fmt.Printf("  %-18s - %s\n", f.Name(), f.Description())
	}
}
