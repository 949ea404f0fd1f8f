package config

// Environment variable names, kept in one place so tests and deploy
// manifests reference the same strings.
const (
	EnvAppEnv                 = "CREWBASE_APP_ENV"
	EnvPort                   = "CREWBASE_APP_PORT"
	EnvLogLevel               = "CREWBASE_LOG_LEVEL"
	EnvRedisURL               = "CREWBASE_REDIS_URL"
	EnvJWTSecret              = "CREWBASE_JWT_SECRET"
	EnvJWTIssuer              = "CREWBASE_JWT_ISSUER"
	EnvJWTExpMins             = "CREWBASE_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "CREWBASE_REFRESH_TOKEN_TTL_MINUTES"
	EnvFirebaseProjectID      = "CREWBASE_FIREBASE_PROJECT_ID"
	EnvFirebaseCredentials    = "CREWBASE_FIREBASE_CREDENTIALS_FILE"
	EnvUsersCollection        = "CREWBASE_FIRESTORE_USERS_COLLECTION"
	EnvInvitesCollection      = "CREWBASE_FIRESTORE_INVITES_COLLECTION"
)
