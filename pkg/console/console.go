package console

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-idle-notifier/internal/shared/types"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// barWidth é o comprimento máximo de uma barra.
const barWidth = 40

// DisplayIdleBars exibe, por tipo de recurso, a fração ociosa do que foi examinado.
func (c *Console) DisplayIdleBars(bars []types.IdleBar) {
	fmt.Println("\n" + RenderIdleBars(bars))
}

// RenderIdleBars monta o painel exibido por DisplayIdleBars.
func RenderIdleBars(bars []types.IdleBar) string {
	tableData := pterm.TableData{
		{"Resource Type", "Idle", "", "Share"},
	}

	for _, b := range bars {
		share := 0.0
		if b.Examined > 0 {
			share = float64(b.Idle) / float64(b.Examined)
		}
		barLength := int(share * barWidth)
		bar := strings.Repeat("█", barLength)

		var barColor, shareText string
		switch {
		case b.Examined == 0:
			barColor = ""
			shareText = pterm.FgGray.Sprint("n/a")
		case b.Idle == 0:
			barColor = pterm.FgGreen.Sprint(bar)
			shareText = pterm.FgGreen.Sprint("0%")
		case share >= 0.5:
			barColor = pterm.FgRed.Sprint(bar)
			shareText = pterm.FgRed.Sprintf("%.0f%%", share*100)
		default:
			barColor = pterm.FgYellow.Sprint(bar)
			shareText = pterm.FgYellow.Sprintf("%.0f%%", share*100)
		}

		tableData = append(tableData, []string{
			b.Label,
			fmt.Sprintf("%d/%d", b.Idle, b.Examined),
			barColor,
			shareText,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	return pterm.DefaultBox.WithTitle("Idle Resources by Type").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)
}
