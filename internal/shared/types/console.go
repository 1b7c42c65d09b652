package types

// Logger is the subset of console output the use case relies on.
type Logger interface {
	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})
}

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Logger

	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	Status(message string) StatusHandle
	CreateTable() TableInterface
	DisplayIdleBars(bars []IdleBar)
}

// IdleBar é uma linha do gráfico de recursos ociosos por tipo.
type IdleBar struct {
	Label    string
	Examined int
	Idle     int
}

// StatusHandle é uma interface para atualizar uma mensagem de status.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}
