package nativelog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLogFilePerm = 0o644
	defaultLogDirPerm  = 0o755
)

// Options configures NewZapLogger.
type Options struct {
	Env   string // "development" switches to a colored console encoder
	Level string // debug | info | warn | error
	Dir   string // when set, logs are also appended to a daily file here
}

// DailyFilename returns the log filename for the given day.
func DailyFilename(now time.Time) string {
	return "legalcurrent_" + now.Format("2006-01-02") + ".log"
}

// Writer appends log lines to one file per day.
type Writer struct {
	mu  sync.Mutex
	dir string
	now func() time.Time
}

// NewWriter creates dir if needed and returns a writer rooted there.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, defaultLogDirPerm); err != nil {
		return nil, fmt.Errorf("create log dir %q: %w", dir, err)
	}
	return &Writer{dir: dir, now: time.Now}, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	path := filepath.Join(w.dir, DailyFilename(w.now()))
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, defaultLogFilePerm)
	if err != nil {
		return 0, err
	}

	n, writeErr := file.Write(p)
	closeErr := file.Close()
	if writeErr != nil {
		return n, writeErr
	}
	return n, closeErr
}

func (w *Writer) Sync() error {
	return nil
}

// NewZapLogger builds the process logger: console output in development,
// JSON in every other environment, optionally tee'd into daily files.
func NewZapLogger(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level.SetLevel(parsed)
	}

	var encoder zapcore.Encoder
	if opts.Env == "development" {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)}
	if opts.Dir != "" {
		writer, err := NewWriter(opts.Dir)
		if err != nil {
			return nil, err
		}
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(writer), level))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	_ = zap.RedirectStdLog(logger)
	return logger, nil
}
