//go:build !nogui

package main

import (
	_ "github.com/vovakirdan/flappy/internal/platform/vector"
	_ "github.com/vovakirdan/flappy/internal/platform/widget"
)
