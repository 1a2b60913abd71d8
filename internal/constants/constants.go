package constants

// Centralized constants for env keys, the Wikidata integration and HTTP.
const (
	// Environment variable keys
	EnvConfigPath = "HUNDREDNAMES_CONFIG"
	EnvDBPath     = "HUNDREDNAMES_DB"
	EnvLogLevel   = "HUNDREDNAMES_LOG_LEVEL"

	// HTTP headers
	HeaderUserAgent = "User-Agent"

	// Wikidata endpoints and defaults
	WikidataBaseURL        = "https://www.wikidata.org"
	WikidataSearchPath     = "/w/api.php"
	WikidataEntityDataPath = "/wiki/Special:EntityData/"
	WikidataProfileBaseURL = "https://www.wikidata.org/wiki/"

	// Wikimedia Commons image redirect endpoint
	CommonsFilePathURL = "https://commons.wikimedia.org/wiki/Special:FilePath/"

	// Wikidata property/entity identifiers used by the resolver
	WikidataPropInstanceOf = "P31"
	WikidataPropGender     = "P21"
	WikidataPropImage      = "P18"
	WikidataHumanID        = "Q5"

	// User agent sent on knowledge-base requests
	ResolverUserAgent = "hundred-names/1.0 (naming game; wikidata resolver)"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteGames       = "/games"
	RouteGameByCode  = "/games/:gameCode"
	RouteGameStart   = "/games/:gameCode/start"
	RouteGameSubmit  = "/games/:gameCode/submit"
	RouteGameAbort   = "/games/:gameCode/abort"
	RouteGameSave    = "/games/:gameCode/save"
	RouteSessions    = "/sessions"
	RouteRegister    = "/players/register"
	RouteLogin       = "/players/login"
	RouteLeaderboard = "/leaderboard"
	RouteVersion     = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest  = "Invalid request"
	ErrInvalidGameCode = "Invalid game code"
	ErrGameNotFound    = "Game not found"

	ErrPlayerNameExceeds    = "Player name exceeds 64 characters"
	ErrFailedSaveSession    = "Failed to save session"
	ErrFailedFetchSessions  = "Failed to fetch sessions"
	ErrFailedClearSessions  = "Failed to clear sessions"
	ErrMissingSessionFields = "Missing required fields: playerName or date"

	ErrUsernameTaken          = "Username already exists"
	ErrInvalidCredentials     = "Invalid credentials"
	ErrFailedRegisterPlayer   = "Failed to register player"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedUpdateBestTime   = "Failed to update best time"
	ErrPlayerNotFound         = "Player not found"
)

// Structured log field keys
const (
	LogFieldAddr     = "addr"
	LogFieldGameCode = "game_code"
	LogFieldName     = "name"
	LogFieldGender   = "gender"
	LogFieldEntityID = "entity_id"
	LogFieldEpoch    = "epoch"
	LogFieldPlayer   = "player"
)
