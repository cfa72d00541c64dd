package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/vizaj/pkg/colormap"
	"github.com/dd0wney/vizaj/pkg/config"
	"github.com/dd0wney/vizaj/pkg/engine"
	"github.com/dd0wney/vizaj/pkg/logging"
	"github.com/dd0wney/vizaj/pkg/montage"
	"github.com/dd0wney/vizaj/pkg/visualization"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	tableBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			Width(14)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

const (
	fineStep   = 0.005
	coarseStep = 0.05
	rampWidth  = 32
	barWidth   = 30
)

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Eco      key.Binding
	ColorMap key.Binding
	Rescale  key.Binding
	FullSet  key.Binding
	Profile  key.Binding
	Preset   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "density +"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "density -"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "density fine -"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "density fine +"),
	),
	Eco: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "eco filter"),
	),
	ColorMap: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "next color map"),
	),
	Rescale: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescale to visible"),
	),
	FullSet: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "rescale to all"),
	),
	Profile: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "line/volume"),
	),
	Preset: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "next geometry"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Eco, k.ColorMap, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Eco, k.Rescale, k.FullSet},
		{k.ColorMap, k.Profile, k.Preset},
		{k.Help, k.Quit},
	}
}

type model struct {
	engine     *engine.Engine
	result     engine.LoadResult
	degrees    table.Model
	help       help.Model
	keys       keyMap
	width      int
	message    string
	messageErr bool
	preset     int
}

func newDegreeTable() table.Model {
	columns := []table.Column{
		{Title: "Node", Width: 6},
		{Title: "Label", Width: 12},
		{Title: "Degree", Width: 8},
		{Title: "Indicator", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func initialModel(eng *engine.Engine, res engine.LoadResult) model {
	m := model{
		engine:  eng,
		result:  res,
		degrees: newDegreeTable(),
		help:    help.New(),
		keys:    keys,
		preset:  -1,
	}
	m.refreshTable()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// paramsMsg carries a parameter set reloaded from disk
type paramsMsg struct {
	params config.Params
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case paramsMsg:
		res, err := m.engine.ApplyParams(msg.params)
		if err != nil {
			m.fail(err)
			break
		}
		m.result = res
		m.info("parameters reloaded, density %.4f", res.Density)
		m.refreshTable()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.nudgeDensity(coarseStep)
		case key.Matches(msg, m.keys.Down):
			m.nudgeDensity(-coarseStep)
		case key.Matches(msg, m.keys.Right):
			m.nudgeDensity(fineStep)
		case key.Matches(msg, m.keys.Left):
			m.nudgeDensity(-fineStep)
		case key.Matches(msg, m.keys.Eco):
			d := m.engine.EcoFilter()
			m.info("eco filtered to density %.4f", d)
		case key.Matches(msg, m.keys.ColorMap):
			m.nextColorMap()
		case key.Matches(msg, m.keys.Rescale):
			s := m.engine.RescaleColors(true)
			m.info("colors rescaled to visible [%.4g, %.4g]", s.Min, s.Max)
		case key.Matches(msg, m.keys.FullSet):
			s := m.engine.RescaleColors(false)
			m.info("colors rescaled to all links [%.4g, %.4g]", s.Min, s.Max)
		case key.Matches(msg, m.keys.Profile):
			m.toggleProfile()
		case key.Matches(msg, m.keys.Preset):
			m.nextPreset()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		m.refreshTable()
	}
	return m, nil
}

func (m *model) info(format string, args ...any) {
	m.message = fmt.Sprintf(format, args...)
	m.messageErr = false
}

func (m *model) fail(err error) {
	m.message = err.Error()
	m.messageErr = true
}

func (m *model) nudgeDensity(step float64) {
	d, _ := m.engine.Density()
	applied := m.engine.SetDensity(d + step)
	m.info("density %.4f", applied)
}

func (m *model) nextColorMap() {
	names := colormap.Names()
	current := m.engine.ColorState().Name
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
		}
	}
	if err := m.engine.SetColorMap(next); err != nil {
		m.fail(err)
		return
	}
	m.info("color map %s", next)
}

func (m *model) toggleProfile() {
	kind := visualization.ProfileVolume
	if m.engine.Params().Profile == visualization.ProfileVolume {
		kind = visualization.ProfileLine
	}
	if err := m.engine.SetProfile(kind); err != nil {
		m.fail(err)
		return
	}
	m.info("profile %s", kind)
}

func (m *model) nextPreset() {
	names := visualization.PresetNames()
	m.preset = (m.preset + 1) % len(names)
	if err := m.engine.ApplyPreset(names[m.preset]); err != nil {
		m.fail(err)
		return
	}
	m.info("geometry %s", names[m.preset])
}

func (m *model) refreshTable() {
	snap := m.engine.Snapshot(engine.SnapshotOptions{})
	rows := make([]table.Row, 0, len(snap.Nodes))
	for _, n := range snap.TopDegrees(len(snap.Nodes)) {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", n.Index),
			n.Label,
			fmt.Sprintf("%d", n.Degree),
			fmt.Sprintf("%.3f", n.Indicator),
		})
	}
	m.degrees.SetRows(rows)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🧠 vizaj link explorer"))
	b.WriteString("\n\n")

	stats := m.renderStats()
	degrees := tableBoxStyle.Render(m.degrees.View())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats, degrees))
	b.WriteString("\n")

	if m.message != "" {
		style := successStyle
		if m.messageErr {
			style = errorStyle
		}
		b.WriteString("  " + style.Render(m.message) + "\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m model) renderStats() string {
	p := m.engine.Params()
	density, maxDensity := m.engine.Density()
	visible, total := m.engine.Counts()
	state := m.engine.ColorState()
	_, id := m.engine.Montage()

	rows := []string{
		row("Montage", shortID(id)),
		row("Links", fmt.Sprintf("%d / %d", visible, total)),
		row("Excluded", fmt.Sprintf("%d", len(m.result.Degenerate))),
		row("Density", fmt.Sprintf("%.4f", density)),
		"  " + densityBar(density, maxDensity),
		row("Mean degree", fmt.Sprintf("%.3f", m.engine.MeanDegree())),
		row("Profile", string(p.Profile)),
		row("Geometry", presetName(p)),
		row("Color map", state.Name),
		"  " + colorRamp(state.Name),
		row("Range", fmt.Sprintf("[%.4g, %.4g]", state.Min, state.Max)),
	}
	return statsBoxStyle.Render(strings.Join(rows, "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func presetName(p config.Params) string {
	if p.Preset == "" {
		return "custom"
	}
	return p.Preset
}

func densityBar(density, maxDensity float64) string {
	filled := int(density * barWidth)
	limit := int(maxDensity * barWidth)
	var b strings.Builder
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			b.WriteString("█")
		case i < limit:
			b.WriteString("░")
		default:
			b.WriteString(" ")
		}
	}
	return b.String()
}

// colorRamp draws the palette as a row of colored cells
func colorRamp(name string) string {
	p, ok := colormap.Lookup(name)
	if !ok {
		return ""
	}
	var b strings.Builder
	for i := 0; i < rampWidth; i++ {
		c := p.At(float64(i) / (rampWidth - 1))
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(" "))
	}
	return b.String()
}

func main() {
	var src montage.Sources
	flag.StringVar(&src.Positions, "positions", "", "Node coordinates CSV")
	flag.StringVar(&src.Labels, "labels", "", "Node labels CSV (optional)")
	flag.StringVar(&src.Matrix, "matrix", "", "Connectivity matrix CSV")
	flag.StringVar(&src.JSON, "json", "", "Montage JSON with labels, coordinates and edges")
	configPath := flag.String("config", "", "Parameters file (.yaml or .json)")
	logPath := flag.String("log", "", "Write JSON logs to this file")
	watch := flag.Bool("watch", false, "Reload -config whenever it changes")
	flag.Parse()

	logger := logging.NewNopLogger()
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = logging.New(f, logging.Options{Level: logging.DebugLevel})
	}

	params := config.Default()
	if *configPath != "" {
		p, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load parameters: %v", err)
		}
		params = p
	}

	eng, err := engine.New(params, engine.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	m, links, err := montage.LoadFiles(src)
	if err != nil {
		log.Fatalf("Failed to load montage: %v", err)
	}
	if err := eng.SetMontage(m); err != nil {
		log.Fatalf("Failed to set montage: %v", err)
	}
	res, err := eng.LoadEdges(links, engine.LoadOptions{})
	if err != nil {
		log.Fatalf("Failed to load links: %v", err)
	}

	p := tea.NewProgram(initialModel(eng, res), tea.WithAltScreen())
	if *watch && *configPath != "" {
		w, err := config.Watch(*configPath, config.DefaultDebounce, logger, func(params config.Params) {
			p.Send(paramsMsg{params: params})
		})
		if err != nil {
			log.Fatalf("Failed to watch parameters: %v", err)
		}
		defer w.Close()
	}
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
