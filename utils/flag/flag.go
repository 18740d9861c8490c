/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package

	Parse must be called from main before the flag values are read. Test
	binaries never call Parse, and get the default values.
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment bool
	ServiceName   string
	ByPassAuth    bool
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "name of the running service")
	flag.BoolVar(&ByPassAuth, "bypass_auth", false, "skip bearer token verification, local debugging only")
}

func Parse() {
	flag.Parse()
}
