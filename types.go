package main

type model struct {
	width          int
	height         int
	app            *App
	sched          *teaScheduler
	config         *Config
	help           bool
	helpScroll     int
	errorMessage   string
	successMessage string
}

// menuItem is one entry of the section menu.
type menuItem struct {
	Key    string
	Name   string
	Active bool
}
