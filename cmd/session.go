package cmd

import (
	"errors"
	"io/fs"
	"io/ioutil"
	"log"
	"os"
	"os/user"

	"github.com/josephlewis42/minishell/core/alias"
	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/history"
	"github.com/spf13/cobra"
)

// session holds what every subcommand needs to know about the user.
type session struct {
	home string
	user string
	host string

	cfg    *config.Configuration
	logger *log.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	sess := &session{
		logger: log.New(ioutil.Discard, "", 0),
	}
	if verbose {
		sess.logger = log.New(cmd.ErrOrStderr(), "[minishell] ", 0)
	}

	if u, err := user.Current(); err == nil {
		sess.user = u.Username
		sess.home = u.HomeDir
	} else {
		sess.logger.Printf("couldn't look up the current user: %v", err)
		sess.user = os.Getenv("USER")
	}
	if sess.home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		sess.home = home
	}

	host, err := os.Hostname()
	if err != nil {
		sess.logger.Printf("couldn't look up the host name: %v", err)
		host = "localhost"
	}
	sess.host = host

	cfg, err := sess.loadConfig()
	if err != nil {
		return nil, err
	}
	sess.cfg = cfg

	return sess, nil
}

func (s *session) configDir() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultDir(s.home)
}

func (s *session) loadConfig() (*config.Configuration, error) {
	path := s.configDir()
	configuration, err := config.Load(path)

	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Printf("No configuration in %q, using defaults: did you run init?", path)
		return config.Default(), nil
	}

	return configuration, err
}

func (s *session) aliases() (*alias.Table, error) {
	path := s.cfg.AliasesPath(s.home)
	table, err := alias.Load(s.cfg.Fs(), path, func(lineno int, line string) {
		s.logger.Printf("%s:%d: skipping malformed alias %q", path, lineno, line)
	})
	if err != nil {
		return nil, err
	}

	table.Exact = s.cfg.ExactAliases()
	s.logger.Printf("loaded %d aliases from %q", table.Len(), path)
	return table, nil
}

func (s *session) history() *history.Log {
	return history.New(s.cfg.Fs(), s.cfg.HistoryPath(s.home), s.cfg.HistorySize)
}

// color reports whether output to f should be colored.
func (s *session) color(f *os.File) bool {
	switch s.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(f)
	}
}
