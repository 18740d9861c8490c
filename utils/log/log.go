package log

import (
	"os"

	"github.com/ArjunKaliyath/socials/utils/dotenv"
	"github.com/ArjunKaliyath/socials/utils/flag"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	// JSON formatter in prod for log ingestion, default text formatter
	// elsewhere for better readability.
	if os.Getenv("SOCIALS_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithFields(
		logrus.Fields{"service": flag.ServiceName, "is_development": os.Getenv("SOCIALS_ENV") != dotenv.ProdEnv},
	)
}
