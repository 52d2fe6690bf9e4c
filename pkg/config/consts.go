package config

const EnvPrefix = "EVDR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "EVDR_APP_ENV"
	EnvPort     = "EVDR_APP_PORT"
	EnvLogLevel = "EVDR_LOG_LEVEL"

	EnvDBDSN  = "EVDR_DB_DSN"
	EnvDBHost = "EVDR_DB_HOST"
	EnvDBPort = "EVDR_DB_PORT"
	EnvDBUser = "EVDR_DB_USER"
	EnvDBName = "EVDR_DB_NAME"

	EnvRedisURL = "EVDR_REDIS_URL"

	EnvSalesServiceURL    = "EVDR_SALES_SERVICE_URL"
	EnvVehicleServiceURL  = "EVDR_VEHICLE_SERVICE_URL"
	EnvCustomerServiceURL = "EVDR_CUSTOMER_SERVICE_URL"
	EnvUserServiceURL     = "EVDR_USER_SERVICE_URL"

	EnvSyncInterval = "EVDR_SYNC_INTERVAL"
	EnvSyncLockTTL  = "EVDR_SYNC_LOCK_TTL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
