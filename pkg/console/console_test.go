package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestTableRender(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	table := NewConsole(true, nil).CreateTable()
	table.AddColumn("Period Start")
	table.AddColumn("Central")
	table.AddRow("2024-01-01", "$  100")
	table.AddRow("2024-02-01", 201)

	out := table.Render()
	assert.Contains(t, out, "Period Start")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "201")
	assert.Equal(t, 1, strings.Count(out, "Central"))
}

func TestQuietStatusIsNoop(t *testing.T) {
	status := NewConsole(true, nil).Status("working")
	status.Update("still working")
	status.Stop()
}

func TestConsoleWritesToOut(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var out bytes.Buffer
	c := NewConsole(false, &out)
	c.LogInfo("tenants %s", "222222222222")
	c.LogSuccess("delivered")
	c.LogWarning("estimated")
	c.Println("table")

	assert.Contains(t, out.String(), "tenants 222222222222")
	assert.Contains(t, out.String(), "delivered")
	assert.Contains(t, out.String(), "estimated")
	assert.Contains(t, out.String(), "table")
}

func TestQuietConsoleSuppressesInfo(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(true, &out)
	c.LogInfo("tenants")
	c.LogSuccess("delivered")

	assert.Empty(t, out.String())
}
