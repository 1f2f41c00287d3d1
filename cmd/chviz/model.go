package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/chunkpool/cmd/chviz/logger"
	"github.com/joshuapare/chunkpool/pool"
)

// allocBatch is how many chunks AllocMany takes at once.
const allocBatch = 10

// Model is the viewer state. The chain is shared between copies of the model;
// live holds every chunk handed out and not yet freed, oldest first.
type Model struct {
	chain *pool.Chain
	live  [][]byte
	rng   *rand.Rand
	keys  KeyMap

	width    int
	height   int
	showHelp bool

	status string
	err    error
}

// NewModel wraps chain. seed drives the random free key.
func NewModel(chain *pool.Chain, seed uint64) Model {
	return Model{
		chain:  chain,
		rng:    rand.New(rand.NewPCG(seed, seed)),
		keys:   DefaultKeyMap(),
		width:  80,
		status: "ready",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			logger.Info("quit", "live", len(m.live))
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Alloc):
			m.allocate(1)
		case key.Matches(msg, m.keys.AllocMany):
			m.allocate(allocBatch)
		case key.Matches(msg, m.keys.Free):
			m.free(len(m.live) - 1)
		case key.Matches(msg, m.keys.FreeRand):
			if len(m.live) > 0 {
				m.free(m.rng.IntN(len(m.live)))
			} else {
				m.free(-1)
			}
		case key.Matches(msg, m.keys.Clear):
			m.clear()
		}
	}
	return m, nil
}

func (m *Model) allocate(n int) {
	before := m.chain.Len()
	for i := range n {
		chunk, err := m.chain.Allocate()
		if err != nil {
			logger.Error("allocate failed", "after", i, "error", err)
			m.setErr(fmt.Errorf("allocate: %w", err))
			return
		}
		m.live = append(m.live, chunk)
	}
	if grown := m.chain.Len() - before; grown > 0 {
		logger.Debug("chain grown", "new_pools", grown, "pools", m.chain.Len())
		m.setStatus(fmt.Sprintf("allocated %d, chain grew to %d pools", n, m.chain.Len()))
		return
	}
	m.setStatus(fmt.Sprintf("allocated %d", n))
}

// free returns live[i] to the chain. An out-of-range i means nothing is live.
func (m *Model) free(i int) {
	if i < 0 || i >= len(m.live) {
		m.setStatus("nothing to free")
		return
	}
	if err := m.chain.Free(m.live[i]); err != nil {
		logger.Error("free failed", "index", i, "error", err)
		m.setErr(fmt.Errorf("free: %w", err))
		return
	}
	m.live = append(m.live[:i], m.live[i+1:]...)
	logger.Debug("chunk freed", "index", i, "live", len(m.live))
	m.setStatus(fmt.Sprintf("freed chunk %d", i))
}

func (m *Model) clear() {
	m.chain.Clear()
	m.live = nil
	logger.Debug("chain cleared", "pools", m.chain.Len())
	m.setStatus("cleared every pool")
}

func (m *Model) setStatus(s string) {
	m.status, m.err = s, nil
}

func (m *Model) setErr(err error) {
	m.status, m.err = "", err
}

// Live returns the number of chunks currently handed out.
func (m Model) Live() int { return len(m.live) }
