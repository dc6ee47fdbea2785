// Command cardtui renders the card widget in the terminal: a masked payment
// card that can be revealed, locked, and reloaded.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/avolkov/cardscreen/internal/provider/static"
	"github.com/avolkov/cardscreen/internal/store"
)

func main() {
	fetchDelay := flag.Duration("fetch-delay", 800*time.Millisecond, "simulated fetch latency")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := store.New(ctx, static.Demo(*fetchDelay), zap.NewNop())
	if _, err := tea.NewProgram(newApp(st), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "cardtui:", err)
		os.Exit(1)
	}
}
