package main

import (
	"fmt"
	"photoedit/internal/adapters/converter"
	"photoedit/internal/adapters/file"
	"photoedit/internal/adapters/handler"
	"photoedit/internal/adapters/sender"
	"photoedit/internal/core/domain"
	"photoedit/internal/core/domain/command"
	"photoedit/internal/core/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [image]",
		Short: "Start an interactive editing session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, err := durationSetting("app.command_timeout")
			if err != nil {
				return err
			}

			codec := newCodec()
			store := file.NewStore(viper.GetString("export.dir"))

			session, err := newSession(codec, store)
			if err != nil {
				return err
			}
			defer session.Close()

			out := sender.NewConsoleSender(cmd.OutOrStdout())
			submit := command.NewSubmit(session, out, "submit")
			registry := newCommandRegistry(session, codec, store, out, submit)
			console := handler.NewConsole(registry, out, timeout)

			fmt.Fprintln(cmd.OutOrStdout(), "photoedit: type help for commands, quit to leave")

			if len(args) == 1 {
				console.Handle(cmd.Context(), &domain.Message{Text: "load " + args[0]})
			}

			err = console.Run(cmd.Context(), cmd.InOrStdin())

			// exports still in flight report before the session closes
			submit.Wait()

			return err
		},
	}
}

func newCommandRegistry(editor service.Editor, codec *converter.ImagingConverter, store *file.Store,
	textSender *sender.ConsoleSender, submit *command.Submit) *command.Registry {
	registry := &command.Registry{}

	registry.Register(command.NewLoad(editor, store, textSender, "load"))
	registry.Register(command.NewSet(editor, textSender, "set"))
	registry.Register(command.NewReset(editor, textSender, "reset"))
	registry.Register(submit)
	registry.Register(command.NewDownload(editor, textSender, viper.GetString("export.filename"), "download"))
	registry.Register(command.NewPreview(editor, codec, store, textSender, "preview"))
	registry.Register(command.NewStatus(editor, textSender, "status"))
	registry.Register(command.NewHelp(registry, textSender, "help"))

	return registry
}
