package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config := loadConfig()

	orientation := "horizontal"
	if config.Orientation == OrientationVertical {
		orientation = "vertical"
	}
	flag.StringVar(&config.ContentPath, "content", config.ContentPath, "portfolio YAML file (built-in when empty)")
	flag.StringVar(&config.DataDirectory, "datadir", config.DataDirectory, "directory for the stats database and exports")
	flag.BoolVar(&config.Desktop, "desktop", config.Desktop, "show the desktop before opening the terminal")
	flag.BoolVar(&config.AutoLaunch, "autolaunch", config.AutoLaunch, "open the terminal without waiting for input")
	flag.BoolVar(&config.Rain, "rain", config.Rain, "draw the matrix rain")
	flag.StringVar(&orientation, "orientation", orientation, "rain direction: horizontal or vertical")
	flag.Float64Var(&config.Speed, "speed", config.Speed, "animation speed multiplier")
	flag.StringVar(&config.Listen, "listen", config.Listen, "listen address for serve")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: termfolio [flags] [serve | snapshot <file.png>]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	config.set("orientation", orientation, "")

	var err error
	switch args := flag.Args(); {
	case len(args) == 0:
		err = runTUI(config)
	case args[0] == "serve":
		err = runServe(config)
	case args[0] == "snapshot":
		path := "rain.png"
		if len(args) > 1 {
			path = args[1]
		}
		err = writeRainSnapshot(path, 1280, 720, 240, config.Orientation, time.Now().UnixNano())
		if err == nil {
			fmt.Printf("Saved %s\n", path)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// openStore degrades to no stats when the database cannot be opened.
func openStore(config *Config) *Store {
	store, err := OpenStore(config.GetDataPath())
	if err != nil {
		log.Printf("Warning: stats disabled: %v", err)
		return nil
	}
	return store
}

func runTUI(config *Config) error {
	if path := os.Getenv("TERMFOLIO_DEBUG"); path != "" {
		if !strings.HasSuffix(path, ".log") {
			path = "termfolio-debug.log"
		}
		f, err := tea.LogToFile(path, "termfolio")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	content, err := LoadContent(config.ContentPath)
	if err != nil {
		return err
	}

	var stats sessionStore
	store := openStore(config)
	if store != nil {
		defer store.Close()
		stats = store
	}

	sched := newTeaScheduler()
	app := NewApp(config, content, withSpeed(sched, config.Speed), stats, rand.New(rand.NewSource(time.Now().UnixNano())))
	defer app.Close()

	p := tea.NewProgram(
		newModel(app, sched, config),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

func runServe(config *Config) error {
	content, err := LoadContent(config.ContentPath)
	if err != nil {
		return err
	}
	store := openStore(config)
	if store != nil {
		defer store.Close()
	}
	return runServer(config, content, store)
}
