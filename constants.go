package main

import "time"

type Mode int

const (
	ModeDesktop Mode = iota
	ModeTerminal
)

type Orientation int

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

// Sequencer timing
const (
	typingDelay        = 12 * time.Millisecond
	mottoTypingDelay   = 80 * time.Millisecond
	staggerStep        = 80 * time.Millisecond
	sectionRevealPause = 300 * time.Millisecond
	codeWindowBuffer   = 400 * time.Millisecond

	contentFadeIn    = 500 * time.Millisecond
	lineFadeIn       = 300 * time.Millisecond
	statusFadeIn     = 300 * time.Millisecond
	mottoFadeIn      = 400 * time.Millisecond
	codeWindowFadeIn = 400 * time.Millisecond
)

const (
	initCommand    = "./init_portfolio.sh"
	initMessage1   = "Initializing portfolio..."
	initMessage2   = "Loading developer profile..."
	mottoCommand   = "echo $MOTTO"
	promptTemplate = "%s@%s:~$ "
)

// Fade engine
const (
	fadeZoneRatio       = 0.3
	fadeMaxOffset       = -10.0
	unitsPerCell        = 5.0
	collapseSettleDelay = 350 * time.Millisecond
)

// Intersection watching
const (
	sectionThreshold    = 0.05
	sectionBottomMargin = 0.10
	codeWindowThreshold = 0.1
	menuHighlightSlack  = 3
)

// Frame loop and desktop overlay
const (
	frameInterval   = time.Second / 60
	launchDuration  = 550 * time.Millisecond
	overlayFadeOut  = 600 * time.Millisecond
	doubleTapWindow = 350 * time.Millisecond
	autoLaunchDelay = 1200 * time.Millisecond
	smoothScrollFor = 400 * time.Millisecond
)

// Matrix rain
const (
	rainCharacters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789$+-*/=%\"'#&_(),.;:?!\\|{}<>[]"
	rainInterval    = time.Second / 30
	rainTrailAlpha  = 0.1
	rainResetChance = 0.025
	rainPixelCell   = 16
)

// Colors
const (
	colorBackground = "#0a0a0a"
	colorWindow     = "#0d1117"
	colorRain       = "#00ff41"
	colorPrompt     = "#50fa7b"
	colorCommand    = "#f8f8f2"
	colorOutput     = "#c0c5ce"
	colorJSON       = "#f1fa8c"
	colorCode       = "#8be9fd"
	colorTitle      = "#a8c0ff"
	colorMenu       = "#7a9cff"
	colorBorder     = "#3b4252"
	colorFocus      = "#ffb86c"
	colorMuted      = "#6272a4"
)
