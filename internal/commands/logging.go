package commands

import (
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

const loggerRoot = "pagebuilder.commands"

// CommandLogger names a logger after the command group, e.g.
// pagebuilder.commands.pages, and tags its entries with component=command.
// A blank group logs under pagebuilder.commands.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.ToLower(strings.TrimSpace(group))
	name := loggerRoot
	fields := map[string]any{"component": "command"}
	if group != "" {
		name += "." + group
		fields["command_group"] = group
	}
	return logging.WithFields(logging.ModuleLogger(provider, name), fields)
}
