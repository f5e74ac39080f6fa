// Package logger configura el logging estructurado del servicio con zerolog.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string    // development -> consola legible; resto -> JSON por línea
	Level   string    // debug, info, warn, error; niveles desconocidos caen en info
	Service string    // nombre del servicio, se emite como campo fijo
	Writer  io.Writer // destino de salida; os.Stdout si es nil
}

// Logger expone los niveles que la aplicación usa.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger del servicio con timestamp y el campo service fijo.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: w}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	lctx := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Service != "" {
		lctx = lctx.Str("service", cfg.Service)
	}
	zl := lctx.Logger()

	// Las librerías que usan el logger global de zerolog escriben al mismo destino.
	log.Logger = zl

	return &Logger{zl: zl}
}

func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
