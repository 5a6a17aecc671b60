package appenv

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	isProd  = false
	isStag  = false
	isLocal = false
	EnvName = ""
)

func init() {
	dotEnvErr := godotenv.Load()

	appEnv := os.Getenv("APP_ENV")
	switch appEnv {
	case "local":
		isLocal = true
	case "stag":
		isStag = true
	case "prod":
		isProd = true
	default:
		if dotEnvErr != nil {
			// no .env and no APP_ENV in the process env. happens in `go test`
			// and on fresh checkouts, treat it as a local run
			appEnv = "local"
			isLocal = true
			break
		}
		log.Fatal("The value for APP_ENV in the .env file not determined, aborting...")
	}

	EnvName = appEnv
}

func IsProd() bool {
	return isProd
}
func IsStag() bool {
	return isStag
}
func IsLocal() bool {
	return isLocal
}

func IsStagOrLocal() bool {
	return IsStag() || IsLocal()
}

func IsProdOrStag() bool {
	return IsProd() || IsStag()
}
