package command

import (
	"errors"
	"photoedit/internal/core/port"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	errRegistryNotInitialized = errors.New("can't fetch command, registry not initialized")
	errCommandNotFound        = errors.New("command not found")
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Debug().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		return nil, errRegistryNotInitialized
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, errCommandNotFound
	}

	return handler, nil
}

// ListCommands returns the registered command names in alphabetical order.
func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

// ParseCommandArgs returns everything after the command word, with surrounding whitespace removed.
func ParseCommandArgs(args string) string {
	args = strings.TrimSpace(args)

	idx := strings.IndexAny(args, " \t")
	if idx < 0 {
		return ""
	}

	return strings.TrimSpace(args[idx+1:])
}

func ParseCommand(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return ""
	}

	return strings.ToLower(fields[0])
}
