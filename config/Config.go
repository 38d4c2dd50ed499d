package config

type DraftStoreType string

const DRAFT_STORE_REDIS DraftStoreType = "redis"
const DRAFT_STORE_INMEM DraftStoreType = "memory"

type Config struct {
	HttpPort           int
	HostConfig         HostApiConfig
	RedisConfig        RedisDraftConfig
	InMemConfig        InMemDraftConfig
	DraftStoreType     DraftStoreType
	WorkflowCollection string
	ProgramCollection  string
	DefaultEdgeType    string
	DefaultNodeSize    string
	ThemeId            string
	AutosaveSeconds    int
}

// HostApiConfig points the editor at the CMS item API it persists into.
type HostApiConfig struct {
	BaseUrl     string
	StaticToken string
}

type RedisDraftConfig struct {
	Addrs     []string
	Namespace string
	PoolSize  int
	Password  string
}

type InMemDraftConfig struct {
}
