package config

import (
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
)

// DSNValue returns the explicit DSN, or one assembled from the discrete fields.
func (c DatabaseConfig) DSNValue() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DriverSQLite {
		return defaultSQLiteFile
	}

	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.User = c.User
	mc.Passwd = c.Password
	mc.DBName = c.Name
	mc.ParseTime = true
	// rows affected counts matched rows, so re-applying the same value is not a miss
	mc.ClientFoundRows = true
	params := map[string]string{"charset": c.Charset}
	for k, v := range c.Params {
		params[k] = v
	}
	mc.Params = params
	return mc.FormatDSN()
}
