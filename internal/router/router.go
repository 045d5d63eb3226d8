// Package router keeps the stack of screens shown by the terminal player.
// Screens navigate by returning one of the *Msg types from a command.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/adaptiq/internal/screen"
)

// navigation is implemented by the messages that change the stack.
type navigation interface {
	apply(r *Router) tea.Cmd
}

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct{ Screen screen.Screen }

// PopScreenMsg goes back one screen. The root screen is never popped.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the active screen for Screen, for example when the
// splash hands over to home.
type ReplaceScreenMsg struct{ Screen screen.Screen }

// PopToRootMsg returns to the bottom screen.
type PopToRootMsg struct{}

func (m PushScreenMsg) apply(r *Router) tea.Cmd    { return r.Push(m.Screen) }
func (m ReplaceScreenMsg) apply(r *Router) tea.Cmd { return r.Replace(m.Screen) }
func (PopScreenMsg) apply(r *Router) tea.Cmd       { return r.truncate(len(r.stack) - 1) }
func (PopToRootMsg) apply(r *Router) tea.Cmd       { return r.truncate(1) }

// Router is a stack of screens. Only the top one receives messages.
type Router struct {
	stack []screen.Screen
}

// New returns a router showing root.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push shows s above the current screen and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s without changing the depth.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.stack); n > 0 {
		r.stack[n-1] = s
	} else {
		r.stack = []screen.Screen{s}
	}
	return s.Init()
}

// truncate keeps the bottom depth screens, at least one, and lets the
// newly exposed screen refresh itself.
func (r *Router) truncate(depth int) tea.Cmd {
	depth = max(depth, 1)
	if depth >= len(r.stack) {
		return nil
	}
	clear(r.stack[depth:])
	r.stack = r.stack[:depth]
	if rf, ok := r.Active().(screen.Refresher); ok {
		return rf.Refresh()
	}
	return nil
}

// Active is the top screen, or nil for an empty router.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth is the number of stacked screens.
func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if nav, ok := msg.(navigation); ok {
		return nav.apply(r)
	}
	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View draws the active screen.
func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
