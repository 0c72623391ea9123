package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/thebagchi/ngap-go/lib/bitbuffer"
	"github.com/thebagchi/ngap-go/lib/ngap"
)

var (
	log *logrus.Logger

	CodecLog *logrus.Entry
	NgapLog  *logrus.Entry
	N2Log    *logrus.Entry
	CliLog   *logrus.Entry
)

func init() {
	log = logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	CodecLog = log.WithField("category", "PER")
	NgapLog = log.WithField("category", "NGAP")
	N2Log = log.WithField("category", "N2")
	CliLog = log.WithField("category", "CLI")

	ngap.SetLogger(NgapLog)
}

// SetLevel sets the level of every component logger. Codec tracing is only
// hooked into the bit cursor at Trace level.
func SetLevel(level logrus.Level) {
	log.SetLevel(level)
	if level >= logrus.TraceLevel {
		bitbuffer.SetTracer(CodecLog)
	} else {
		bitbuffer.SetTracer(nil)
	}
}

// SetOutput redirects every component logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetJSON switches to JSON records, one per line.
func SetJSON(enabled bool) {
	if enabled {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func Level() logrus.Level {
	return log.GetLevel()
}
