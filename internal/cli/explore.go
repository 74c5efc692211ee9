package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gaugekit/pkg/config"
	"github.com/matzehuels/gaugekit/pkg/rectangular"
	"github.com/matzehuels/gaugekit/pkg/scaler"
)

var (
	exploreRuleStyle   = lipgloss.NewStyle().Foreground(colorDim)
	exploreMarkerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreLabelStyle  = lipgloss.NewStyle().Foreground(colorGray)
)

// exploreModel steps a value through a horizontal scale one character per
// unit of position.
type exploreModel struct {
	scale *rectangular.Scale
	value float64
	width int
}

func newExploreModel(sc *scaler.Linear, width int) exploreModel {
	m := exploreModel{}
	m.scale = rectangular.New(sc, rectangular.Geometry{Orientation: rectangular.Horizontal})
	m.resize(width)
	if v, ok := m.scale.FirstValidValue(); ok {
		m.value = v
	}
	return m
}

func (m *exploreModel) resize(width int) {
	if width < 20 {
		width = 20
	}
	m.width = width
	m.scale.SetGeometry(rectangular.Geometry{Length: float64(width - 1), Orientation: rectangular.Horizontal})
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var (
			v  float64
			ok bool
		)
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			v, ok = m.scale.NextValidValue(m.value)
		case "left", "h":
			v, ok = m.scale.PreviousValidValue(m.value)
		case "home", "g":
			v, ok = m.scale.FirstValidValue()
		case "end", "G":
			v, ok = m.scale.LastValidValue()
		}
		if ok {
			m.value = v
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width - 4)
	}
	return m, nil
}

// column is the character column of v on the rule.
func (m exploreModel) column(v float64) int {
	x := int(math.Round(m.scale.PointForValue(v).X))
	return max(0, min(m.width-1, x))
}

func (m exploreModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Explore scale"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ step  home/end bounds  q quit"))
	b.WriteString("\n\n")

	marker := []rune(strings.Repeat(" ", m.width))
	marker[m.column(m.value)] = '▼'
	b.WriteString(exploreMarkerStyle.Render(string(marker)))
	b.WriteString("\n")

	rule := []rune(strings.Repeat("─", m.width))
	labels := []rune(strings.Repeat(" ", m.width))
	if ticks, err := m.scale.ComputeTicks(); err == nil {
		for _, t := range ticks {
			col := m.column(t.Value)
			if t.IsMinor {
				if rule[col] == '─' {
					rule[col] = '┴'
				}
				continue
			}
			rule[col] = '┼'
			text := []rune(fmt.Sprintf("%g", t.Value))
			if col+len(text) > m.width {
				col = m.width - len(text)
			}
			copy(labels[max(0, col):], text)
		}
	}
	b.WriteString(exploreRuleStyle.Render(string(rule)))
	b.WriteString("\n")
	b.WriteString(exploreLabelStyle.Render(string(labels)))
	b.WriteString("\n\n")

	p := m.scale.PointForValue(m.value)
	pos, _ := m.scale.PositionForValue(m.value)
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		StyleDim.Render("value"), StyleNumber.Render(fmt.Sprintf("%g", m.value)),
		StyleDim.Render("position"), StyleNumber.Render(fmt.Sprintf("%.4f", pos)),
		StyleDim.Render("x"), StyleNumber.Render(fmt.Sprintf("%.1f", p.X))))
	return b.String()
}

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags scalerFlags
	var configPath, scaleName string

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Step a value through a scale interactively",
		Example: `  gaugekit explore --min -20 --max 40 --snap 0.5
  gaugekit explore --config thermometer.toml --scale celsius`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := flags.scaler()
			if configPath != "" {
				var err error
				if sc, err = scalerFromConfig(configPath, scaleName); err != nil {
					return err
				}
			}
			p := tea.NewProgram(newExploreModel(sc, 60), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&configPath, "config", "", "take the scaler from a gauge description")
	cmd.Flags().StringVar(&scaleName, "scale", "", "scale within --config (default the first)")
	return cmd
}

// scalerFromConfig returns the scaler of the named scale, or of the first
// scale when name is empty.
func scalerFromConfig(path, name string) (*scaler.Linear, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i := range cfg.Scales {
		if name == "" || cfg.Scales[i].Name == name {
			return cfg.Scales[i].Scaler(), nil
		}
	}
	return nil, fmt.Errorf("scale %q not found in %s", name, path)
}
