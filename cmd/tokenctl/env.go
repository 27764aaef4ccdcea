package main

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tokenledger"
	"github.com/iov-one/tokenledger/commands/server"
	"github.com/iov-one/tokenledger/errors"
	"github.com/iov-one/tokenledger/store/badgerdb"
)

// environment is shared by all commands of one tree.
type environment struct {
	cfg    *viper.Viper
	out    io.Writer
	logger log.Logger
}

// withState opens the state, runs fn and closes the state again.
func (e *environment) withState(fn func(db *badgerdb.BadgerStore) error) error {
	home := e.cfg.GetString(flagHome)
	db, err := server.OpenState(home)
	if err != nil {
		return err
	}
	defer db.Close()

	switch done, err := server.Initialized(db); {
	case err != nil:
		return err
	case !done:
		return errors.Wrapf(errors.ErrInvalidState, "no state in %s, run init first", home)
	}
	return fn(db)
}

// context returns the context of a call issued by the configured caller.
// A missing caller is not an error here, operations that need one fail.
func (e *environment) context() (tokenledger.Context, error) {
	ctx := tokenledger.WithLogger(context.Background(), e.logger)
	raw := e.cfg.GetString(flagCaller)
	if raw == "" {
		return ctx, nil
	}
	caller, err := tokenledger.ParseAddress(raw)
	if err != nil {
		return nil, errors.Wrap(err, "caller")
	}
	return tokenledger.WithCaller(ctx, caller), nil
}

// print writes v as indented JSON.
func (e *environment) print(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	raw = append(raw, '\n')
	_, err = e.out.Write(raw)
	return err
}

// lazyLogger forwards to the logger of the environment, which is only
// known once the flags are parsed.
type lazyLogger struct {
	env *environment
}

func loggerOf(env *environment) log.Logger {
	return lazyLogger{env: env}
}

func (l lazyLogger) Debug(msg string, keyvals ...interface{}) { l.env.logger.Debug(msg, keyvals...) }
func (l lazyLogger) Info(msg string, keyvals ...interface{})  { l.env.logger.Info(msg, keyvals...) }
func (l lazyLogger) Error(msg string, keyvals ...interface{}) { l.env.logger.Error(msg, keyvals...) }
func (l lazyLogger) With(keyvals ...interface{}) log.Logger   { return l.env.logger.With(keyvals...) }

func parseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "%q is not a number", s)
	}
	return n, nil
}

// parseUints parses a comma separated list of numbers.
func parseUints(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	res := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := parseUint(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		res[i] = n
	}
	return res, nil
}

func parseAddress(s string) (tokenledger.Address, error) {
	addr, err := tokenledger.ParseAddress(s)
	if err != nil {
		return nil, errors.Wrapf(err, "address %q", s)
	}
	return addr, nil
}
