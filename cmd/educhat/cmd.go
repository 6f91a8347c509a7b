package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cymond/educhat"
	"github.com/cymond/educhat/config"
	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/internal/mylog"
	"github.com/cymond/educhat/server"
)

type flags struct {
	addr       string
	logLevel   string
	provider   string
	model      string
	sqlitePath string
}

func newCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "educhat <character-file OR character-files-dir>",
		Short: "Start the adaptive persona server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.Errorf("character-file or character-files-dir is required")
			}

			characterFiles, err := collectCharacterFiles(args)
			if err != nil {
				return err
			}

			logger := mylog.NewLogger(f.logLevel, "")

			characterConfigs, err := config.LoadCharactersFromFiles(characterFiles)
			if err != nil {
				return errors.Wrapf(err, "failed to load character config")
			}

			var characters []entity.Character
			for _, cc := range characterConfigs {
				character, err := cc.ToCharacter()
				if err != nil {
					return err
				}
				characters = append(characters, *character)
				logger.Info("Character loaded", "name", character.Name, "archetype", character.Archetype)
			}

			memoryConfig := config.NewMemoryConfig()
			if f.sqlitePath != "" {
				memoryConfig.SqliteEnabled = true
				memoryConfig.SqlitePath = f.sqlitePath
			}

			modelConfig := config.NewModelConfig()
			modelConfig.Provider = f.provider
			modelConfig.Model = f.model

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			runtime, err := educhat.NewRuntime(ctx,
				educhat.WithCharacters(characters...),
				educhat.WithLogger(logger),
				educhat.WithMemoryConfig(memoryConfig),
				educhat.WithModelConfig(modelConfig),
			)
			if err != nil {
				return err
			}
			defer runtime.Close()

			srv := server.NewServer(runtime, logger)
			if err := srv.ListenAndServe(ctx, f.addr); err != nil {
				return errors.Wrapf(err, "server stopped")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", ":8090", "listen address")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "generation provider (anthropic, openai; empty for canned replies)")
	cmd.Flags().StringVar(&f.model, "model", "", "provider model identifier")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "sqlite database path (empty keeps everything in memory)")

	return cmd
}

func collectCharacterFiles(args []string) ([]string, error) {
	var characterFiles []string
	for _, filename := range args {
		stat, err := os.Stat(filename)
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "character-file or character-files-dir does not exist")
		}
		if !stat.IsDir() {
			characterFiles = append(characterFiles, filename)
			continue
		}
		files, err := os.ReadDir(filename)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read character-files-dir")
		}
		for _, file := range files {
			if file.IsDir() ||
				(!strings.HasSuffix(file.Name(), ".yaml") && !strings.HasSuffix(file.Name(), ".yml")) {
				continue
			}
			characterFiles = append(characterFiles, fmt.Sprintf("%s/%s", filename, file.Name()))
		}
	}
	return characterFiles, nil
}
