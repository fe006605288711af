package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyMaternityDBType      string = "MATERNITY_DB_TYPE"
	EnvKeyMaternityDbPath      string = "MATERNITY_DB_PATH"
	EnvKeyMaternityPostgresDSN string = "MATERNITY_POSTGRES_DSN"

	EnvKeyMaternityHttpHostPort string = "MATERNITY_HTTP_HOST_PORT"
	EnvKeyMaternityGrpcHostPort string = "MATERNITY_GRPC_HOST_PORT"

	EnvKeyMaternityDefaultRate  string = "MATERNITY_DEFAULT_RATE"
	EnvKeyMaternityDefaultBurst string = "MATERNITY_DEFAULT_BURST"

	EnvKeyMaternityRedisAddr    string = "MATERNITY_REDIS_ADDR"
	EnvKeyMaternityRedisChannel string = "MATERNITY_REDIS_CHANNEL"

	LoggerNameMonitorCore   string = "monitor_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameNotifier      string = "notifier"

	LoggerFieldCategory      string = "category"
	LoggerCategoryReading    string = "reading"
	LoggerCategoryAlert      string = "alert"
	LoggerCategoryThresholds string = "threshold"
	LoggerCategoryTrend      string = "trend"
	LoggerCategorySession    string = "session"
	LoggerCategoryLabor      string = "labor"
)
