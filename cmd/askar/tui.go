package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Dezmoral/Askar/internal/config"
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/Dezmoral/Askar/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runTUI(cmd *cobra.Command, args []string) error {
	printLogo(stdout)

	if !config.ConfigExists(configPath) {
		if err := firstTimeSetup(stdout, stdin); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
	}

	ui.ApplyTheme(cfg.Theme)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Changes made by `askar notes ...` in another terminal show up live.
	watcher, err := ui.NewWatcher(cfg.DBPath, logger)
	if err != nil {
		logger.Warn("store watcher unavailable", zap.Error(err))
	} else {
		defer watcher.Close()
		if err := watcher.Start(ctx); err != nil {
			logger.Warn("store watcher unavailable", zap.Error(err))
			watcher = nil
		}
	}

	m := ui.NewModel(store, cfg, configPath, logger, watcher)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("%s: %w", i18n.T().Error, err)
	}
	return nil
}

func printLogo(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "   █████╗ ███████╗██╗  ██╗ █████╗ ██████╗ ")
	fmt.Fprintln(w, "  ██╔══██╗██╔════╝██║ ██╔╝██╔══██╗██╔══██╗")
	fmt.Fprintln(w, "  ███████║███████╗█████╔╝ ███████║██████╔╝")
	fmt.Fprintln(w, "  ██╔══██║╚════██║██╔═██╗ ██╔══██║██╔══██╗")
	fmt.Fprintln(w, "  ██║  ██║███████║██║  ██╗██║  ██║██║  ██║")
	fmt.Fprintln(w, "  ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝")
	fmt.Fprintln(w)
}

// firstTimeSetup asks for the interface language and writes the config file
// with everything else at its defaults. Flag and environment overrides apply
// to this run only and are not written.
func firstTimeSetup(out io.Writer, in io.Reader) error {
	fmt.Fprintln(out, "  Welcome to Askar! / Добро пожаловать в Askar!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Select language / Выберите язык:")
	fmt.Fprintln(out, "  [1] English")
	fmt.Fprintln(out, "  [2] Русский")
	fmt.Fprint(out, "  > ")

	choice, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read input: %w", err)
	}

	language := i18n.English
	if strings.TrimSpace(choice) == "2" {
		language = i18n.Russian
	}
	i18n.SetLanguage(language)
	cfg.Language = string(language)

	file, err := config.Load(configPath)
	if err != nil {
		return err
	}
	file.Language = string(language)
	if err := file.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	if language == i18n.Russian {
		fmt.Fprintf(out, "  Настройки сохранены в %s\n", configPath)
	} else {
		fmt.Fprintf(out, "  Configuration saved to %s\n", configPath)
	}
	fmt.Fprintln(out)
	return nil
}
