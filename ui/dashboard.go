package ui

import (
	"fmt"
	"strconv"
	"strings"

	tui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/sour-cli/sysmon/models"
	"github.com/sour-cli/sysmon/utils"
)

const procNameWidth = 20

// Dashboard draws view-models onto the terminal. All widgets are owned by
// the orchestrator goroutine; termui rendering is single-threaded.
type Dashboard struct {
	width  int
	height int

	header    *widgets.Paragraph
	cpuGauge  *widgets.Gauge
	memGauge  *widgets.Gauge
	diskGauge *widgets.Gauge

	netRates *widgets.Paragraph
	netSpark *widgets.Sparkline
	netGroup *widgets.SparklineGroup

	stSpark  *widgets.Sparkline
	stGroup  *widgets.SparklineGroup
	stResult *widgets.Paragraph

	procTable *widgets.Table
	partTable *widgets.Table

	killPrompt *widgets.Paragraph
	killTable  *widgets.Table
}

// NewDashboard builds the widget set. termui must be initialized first.
func NewDashboard() *Dashboard {
	width, height := tui.TerminalDimensions()
	d := &Dashboard{width: width, height: height}

	d.header = widgets.NewParagraph()
	d.header.Title = " sysmon "
	d.header.TextStyle = tui.NewStyle(tui.ColorGreen, tui.ColorClear, tui.ModifierBold)

	d.cpuGauge = newGauge("CPU")
	d.memGauge = newGauge("Memory")
	d.diskGauge = newGauge("Disk")

	d.netRates = widgets.NewParagraph()
	d.netRates.Title = " Network "
	d.netRates.BorderStyle.Fg = tui.ColorGreen

	d.netSpark = widgets.NewSparkline()
	d.netSpark.LineColor = tui.ColorGreen
	d.netGroup = widgets.NewSparklineGroup(d.netSpark)
	d.netGroup.Title = " Download trend "
	d.netGroup.BorderStyle.Fg = tui.ColorGreen

	d.stSpark = widgets.NewSparkline()
	d.stSpark.LineColor = tui.ColorYellow
	d.stGroup = widgets.NewSparklineGroup(d.stSpark)
	d.stGroup.Title = " Speedtest "
	d.stGroup.BorderStyle.Fg = tui.ColorYellow

	d.stResult = widgets.NewParagraph()
	d.stResult.Title = " Speedtest result "
	d.stResult.BorderStyle.Fg = tui.ColorYellow

	d.procTable = widgets.NewTable()
	d.procTable.Title = " Top processes "
	d.procTable.RowSeparator = false
	d.procTable.TextStyle = tui.NewStyle(tui.ColorWhite)
	d.procTable.BorderStyle.Fg = tui.ColorCyan

	d.partTable = widgets.NewTable()
	d.partTable.Title = " Filesystems "
	d.partTable.RowSeparator = false
	d.partTable.TextStyle = tui.NewStyle(tui.ColorWhite)
	d.partTable.BorderStyle.Fg = tui.ColorCyan

	d.killPrompt = widgets.NewParagraph()
	d.killPrompt.Title = " Kill process "
	d.killPrompt.BorderStyle.Fg = tui.ColorRed

	d.killTable = widgets.NewTable()
	d.killTable.RowSeparator = false
	d.killTable.TextStyle = tui.NewStyle(tui.ColorWhite)
	d.killTable.BorderStyle.Fg = tui.ColorRed

	return d
}

func newGauge(title string) *widgets.Gauge {
	g := widgets.NewGauge()
	g.Title = " " + title + " "
	return g
}

// Resize adjusts to a new terminal size. The next Render repaints fully.
func (d *Dashboard) Resize(width, height int) {
	d.width = width
	d.height = height
	tui.Clear()
}

// Render draws one frame from the view-model.
func (d *Dashboard) Render(vm *models.ViewModel) {
	d.header.Text = fmt.Sprintf("%s | Uptime: %s\nCommands: %s",
		vm.Snapshot.Hostname, utils.FormatUptime(vm.Snapshot.Uptime), vm.Keys)

	updateGauge(d.cpuGauge, vm.Snapshot.CPUPercent)
	updateGauge(d.memGauge, vm.Snapshot.MemPercent)
	updateGauge(d.diskGauge, vm.Snapshot.DiskPercent)

	d.netRates.Text = fmt.Sprintf("Upload:   %s\nDownload: %s",
		utils.FormatRate(vm.Snapshot.NetSentRate),
		utils.FormatRate(vm.Snapshot.NetRecvRate))
	d.netSpark.Data = sparkData(vm.NetHistory)
	d.netGroup.Title = fmt.Sprintf(" Download trend (%s) ",
		utils.FormatRate(vm.Snapshot.NetRecvRate))

	if vm.NetworkPanel {
		d.updateSpeedtest(vm.Speedtest)
	}

	d.procTable.Rows = procRows(vm.Processes)
	d.partTable.Rows = partRows(vm.Partitions)

	grid := d.buildGrid(vm.NetworkPanel)
	tui.Render(grid)
}

func (d *Dashboard) updateSpeedtest(st models.SpeedtestView) {
	d.stSpark.Data = sparkData(st.Samples)

	status := "idle"
	if st.Running {
		status = "running"
	}
	if last, ok := lastSample(st.Samples); ok {
		d.stGroup.Title = fmt.Sprintf(" Speedtest [%s] %.1f Mbps ", status, last)
	} else {
		d.stGroup.Title = fmt.Sprintf(" Speedtest [%s] ", status)
	}

	var text strings.Builder
	if st.Result != "" {
		text.WriteString(st.Result)
	}
	if st.Err != "" {
		if text.Len() > 0 {
			text.WriteByte('\n')
		}
		text.WriteString("Error: " + st.Err)
	}
	if text.Len() == 0 {
		text.WriteString("Measuring...")
	}
	d.stResult.Text = text.String()
}

// buildGrid lays the widgets out; the network row switches between the
// passive rate view and the live speedtest view.
func (d *Dashboard) buildGrid(networkPanel bool) *tui.Grid {
	grid := tui.NewGrid()
	grid.SetRect(0, 0, d.width, d.height)

	var netRow tui.GridItem
	if networkPanel {
		netRow = tui.NewRow(0.25,
			tui.NewCol(0.5, d.stGroup),
			tui.NewCol(0.5, d.stResult),
		)
	} else {
		netRow = tui.NewRow(0.25,
			tui.NewCol(0.4, d.netRates),
			tui.NewCol(0.6, d.netGroup),
		)
	}

	grid.Set(
		tui.NewRow(0.12, tui.NewCol(1.0, d.header)),
		tui.NewRow(0.27,
			tui.NewCol(1.0/3, d.cpuGauge),
			tui.NewCol(1.0/3, d.memGauge),
			tui.NewCol(1.0/3, d.diskGauge),
		),
		netRow,
		tui.NewRow(0.36,
			tui.NewCol(0.62, d.procTable),
			tui.NewCol(0.38, d.partTable),
		),
	)
	return grid
}

// RenderKillPrompt draws the kill sub-flow screen: the selectable process
// list plus the input/status line. It fully owns the terminal while the
// sub-flow runs.
func (d *Dashboard) RenderKillPrompt(procs []models.ProcessInfo, typed, status string) {
	tui.Clear()

	if status != "" {
		d.killPrompt.Text = status
	} else {
		d.killPrompt.Text = fmt.Sprintf(
			"Select process # to kill (Enter to confirm, Esc to cancel): %s", typed)
	}
	d.killPrompt.SetRect(0, 0, d.width, 3)

	rows := [][]string{{"#", "PID", "Name", "CPU %", "Mem %"}}
	for i, p := range procs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(int(p.PID)),
			displayName(p.Name),
			fmt.Sprintf("%.1f", p.CPUPercent),
			fmt.Sprintf("%.1f", p.MemPercent),
		})
	}
	d.killTable.Title = " Top processes "
	d.killTable.Rows = rows
	d.killTable.SetRect(0, 3, d.width, d.height)

	tui.Render(d.killPrompt, d.killTable)
}

func updateGauge(g *widgets.Gauge, percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	g.Percent = int(percent)
	g.Label = utils.FormatPercent(percent)
	g.BarColor = ColorForPercent(percent)
}

func procRows(procs []models.ProcessInfo) [][]string {
	rows := [][]string{{"PID", "Name", "CPU %", "Mem %"}}
	for _, p := range procs {
		rows = append(rows, []string{
			strconv.Itoa(int(p.PID)),
			displayName(p.Name),
			fmt.Sprintf("%.1f", p.CPUPercent),
			fmt.Sprintf("%.1f", p.MemPercent),
		})
	}
	return rows
}

func partRows(parts []models.PartitionInfo) [][]string {
	rows := [][]string{{"Device", "Mount", "Type"}}
	for _, p := range parts {
		rows = append(rows, []string{
			utils.TruncateString(p.Device, 18),
			utils.TruncateString(p.Mountpoint, 18),
			p.FSType,
		})
	}
	return rows
}

func displayName(name string) string {
	if name == "" {
		return "N/A"
	}
	return utils.TruncateString(name, procNameWidth)
}

// sparkData keeps the sparkline widget happy with at least one point.
func sparkData(samples []float64) []float64 {
	if len(samples) == 0 {
		return []float64{0}
	}
	return samples
}

func lastSample(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	return samples[len(samples)-1], true
}
