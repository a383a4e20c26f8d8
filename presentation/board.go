// Package presentation keeps the state of the gate terminal screen.
// Every region is addressed by the element identifiers of the kiosk markup.
package presentation

import (
	"fmt"
	"io"
	"sync"
	"time"

	"parking-gate/domain"

	"github.com/gookit/color"
	"github.com/samber/lo"
)

type Board struct {
	mu        sync.RWMutex
	out       io.Writer
	colours   bool
	elements  map[domain.ElementID]domain.Element
	lastAlert string
}

func NewBoard(out io.Writer, colours bool) *Board {
	elements := lo.SliceToMap(domain.AllElements, func(id domain.ElementID) (domain.ElementID, domain.Element) {
		return id, domain.Element{ID: id}
	})
	b := &Board{out: out, colours: colours, elements: elements}
	b.elements[domain.ElementStartScanning] = domain.Element{
		ID: domain.ElementStartScanning, Text: "Start scanning", Visible: true,
	}
	return b
}

func (b *Board) SetText(id domain.ElementID, text string) {
	b.mu.Lock()
	el := b.elements[id]
	el.ID = id
	el.Text = text
	el.Visible = true
	b.elements[id] = el
	b.mu.Unlock()

	b.render(color.New(color.FgCyan), id, text)
}

func (b *Board) SetVisible(id domain.ElementID, visible bool) {
	b.mu.Lock()
	el := b.elements[id]
	changed := el.Visible != visible
	el.ID = id
	el.Visible = visible
	b.elements[id] = el
	b.mu.Unlock()

	if changed && id == domain.ElementLoader {
		b.render(color.New(color.FgYellow), id, lo.Ternary(visible, "processing...", "ready"))
	}
}

// Alert is the blocking popup of the kiosk; here it is a highlighted line.
func (b *Board) Alert(message string) {
	b.mu.Lock()
	b.lastAlert = message
	b.mu.Unlock()

	b.render(color.New(color.FgWhite, color.BgRed, color.OpBold), "alert", message)
}

func (b *Board) Element(id domain.ElementID) domain.Element {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.elements[id]
}

func (b *Board) LastAlert() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastAlert
}

// Snapshot returns the elements in markup order.
func (b *Board) Snapshot() []domain.Element {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return lo.Map(domain.AllElements, func(id domain.ElementID, _ int) domain.Element {
		return b.elements[id]
	})
}

func (b *Board) render(style color.Style, id domain.ElementID, text string) {
	if b.out == nil {
		return
	}
	line := fmt.Sprintf("%s [%s] %s", time.Now().Format("15:04:05"), id, text)
	if b.colours {
		line = style.Render(line)
	}
	_, _ = fmt.Fprintln(b.out, line)
}
