package pg

import "github.com/jackc/pgx/v5/pgxpool"

// AuthScope is the closed set of authentication boundaries a connection can
// sign in under. The three implementations are mutually exclusive and the
// union is sealed by the unexported marker method; ScopeFromConfig builds the
// scope exactly once from configuration.
type AuthScope interface {
	// ApplyTo adjusts the pool configuration for the scope's sign-in path.
	ApplyTo(cfg *pgxpool.Config)
	String() string

	isAuthScope()
}

// RootScope signs in with full administrative privileges against the URL's
// own database. Fallback for bootstrap and development use.
type RootScope struct{}

func (RootScope) ApplyTo(*pgxpool.Config) {}
func (RootScope) String() string          { return "root" }
func (RootScope) isAuthScope()            {}

// NamespaceScope signs in scoped to a namespace: the connection targets the
// database named by the namespace with the default search_path.
type NamespaceScope struct {
	Namespace string
}

func (s NamespaceScope) ApplyTo(cfg *pgxpool.Config) {
	cfg.ConnConfig.Database = s.Namespace
}
func (s NamespaceScope) String() string { return "namespace " + s.Namespace }
func (NamespaceScope) isAuthScope()     {}

// DatabaseScope signs in scoped to a namespace/database pair: the connection
// targets the namespace's database and pins search_path to the named schema.
// The lowest-privilege option.
type DatabaseScope struct {
	Namespace string
	Database  string
}

func (s DatabaseScope) ApplyTo(cfg *pgxpool.Config) {
	cfg.ConnConfig.Database = s.Namespace
	if cfg.ConnConfig.RuntimeParams == nil {
		cfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = s.Database
}
func (s DatabaseScope) String() string { return "database " + s.Namespace + "/" + s.Database }
func (DatabaseScope) isAuthScope()     {}

// ScopeFromConfig selects the authentication scope from the configuration
// shape. Lower-privilege scopes win whenever enough configuration is present:
// namespace plus scope name yields a database scope, namespace alone yields a
// namespace scope, and the absence of both falls back to root.
func ScopeFromConfig(cfg Config) AuthScope {
	switch {
	case cfg.Namespace != "" && cfg.ScopeName != "":
		return DatabaseScope{Namespace: cfg.Namespace, Database: cfg.ScopeName}
	case cfg.Namespace != "":
		return NamespaceScope{Namespace: cfg.Namespace}
	default:
		return RootScope{}
	}
}
