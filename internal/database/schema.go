package database

import (
	"database/sql"

	"genovault/internal/constants"
)

// GetSchema returns the full SQL schema for the application database
func GetSchema() string {
	return `
-- ============================================================================
-- AUTH TABLES
-- ============================================================================

-- Users table (deactivated, never hard-deleted for audit trail integrity)
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,                 -- uuid
    email TEXT NOT NULL UNIQUE,          -- stored lowercase
    name TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,         -- "saltHex:keyHex" (PBKDF2-SHA512)
    role TEXT NOT NULL DEFAULT 'admin',
    is_active INTEGER NOT NULL DEFAULT 1,
    is_bootstrap INTEGER NOT NULL DEFAULT 0,
    failed_login_count INTEGER NOT NULL DEFAULT 0,
    locked_until INTEGER,                -- unix timestamp, NULL when unlocked
    last_login_at INTEGER,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE INDEX IF NOT EXISTS idx_users_active ON users(is_active);

-- ============================================================================
-- PATIENT / REPORT TABLES
-- ============================================================================

CREATE TABLE IF NOT EXISTS patients (
    id TEXT PRIMARY KEY,                 -- uuid
    name TEXT NOT NULL,
    date_of_birth TEXT NOT NULL DEFAULT '',
    gender TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    sample_collected_at TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
    id TEXT PRIMARY KEY,                 -- uuid
    patient_id TEXT NOT NULL,
    quote TEXT NOT NULL DEFAULT '',      -- viewer header quote
    description TEXT NOT NULL DEFAULT '',
    settings_json TEXT NOT NULL DEFAULT '{}',  -- viewer display settings
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (patient_id) REFERENCES patients(id)
);

CREATE INDEX IF NOT EXISTS idx_reports_patient ON reports(patient_id);

-- Admin-defined extra diet fields rendered in the nutrition section
CREATE TABLE IF NOT EXISTS diet_field_definitions (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    field_id TEXT NOT NULL,
    label TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    min_score INTEGER NOT NULL DEFAULT 1,
    max_score INTEGER NOT NULL DEFAULT 10,
    high_recommendation TEXT NOT NULL DEFAULT '',
    normal_recommendation TEXT NOT NULL DEFAULT '',
    low_recommendation TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_diet_fields_report ON diet_field_definitions(report_id);

-- One row per (section, field); flattened into a keyed map by the transformer
CREATE TABLE IF NOT EXISTS nutrition_entries (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    section TEXT NOT NULL,               -- e.g. "vitamins", "minerals"
    field TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0,
    health_impact TEXT NOT NULL DEFAULT '',
    intake_level TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id),
    UNIQUE(report_id, section, field)
);

CREATE INDEX IF NOT EXISTS idx_nutrition_report ON nutrition_entries(report_id);

-- One row per (category, condition); guidance lists stored as JSON arrays
CREATE TABLE IF NOT EXISTS lifestyle_conditions (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    condition_name TEXT NOT NULL,
    sensitivity TEXT NOT NULL DEFAULT '',
    avoid_json TEXT NOT NULL DEFAULT '[]',
    follow_json TEXT NOT NULL DEFAULT '[]',
    consume_json TEXT NOT NULL DEFAULT '[]',
    monitor_json TEXT NOT NULL DEFAULT '[]',
    avoid_label TEXT NOT NULL DEFAULT '',
    follow_label TEXT NOT NULL DEFAULT '',
    consume_label TEXT NOT NULL DEFAULT '',
    monitor_label TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id),
    UNIQUE(report_id, category_id, condition_name)
);

CREATE INDEX IF NOT EXISTS idx_lifestyle_report ON lifestyle_conditions(report_id);

CREATE TABLE IF NOT EXISTS lifestyle_category_images (
    report_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    image_url TEXT NOT NULL,
    PRIMARY KEY (report_id, category_id),
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

-- Genes grouped by metabolic area by the transformer
CREATE TABLE IF NOT EXISTS metabolic_entries (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    area TEXT NOT NULL,
    gene_name TEXT NOT NULL,
    genotype TEXT NOT NULL DEFAULT '',
    impact TEXT NOT NULL DEFAULT '',
    advice TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_metabolic_report ON metabolic_entries(report_id);

-- Keyed section items: digestive health, addiction, sleep, allergies
CREATE TABLE IF NOT EXISTS section_items (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    section TEXT NOT NULL,               -- 'digestive' | 'addiction' | 'sleep' | 'allergy'
    field TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    sensitivity TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id),
    UNIQUE(report_id, section, field)
);

CREATE INDEX IF NOT EXISTS idx_section_items_report ON section_items(report_id, section);

-- Bucketed half-yearly / yearly by the transformer
CREATE TABLE IF NOT EXISTS preventive_tests (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    frequency TEXT NOT NULL,             -- 'halfYearly' | 'yearly'
    test_name TEXT NOT NULL,
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_preventive_report ON preventive_tests(report_id);

CREATE TABLE IF NOT EXISTS supplements (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    supplement_name TEXT NOT NULL,
    needed INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_supplements_report ON supplements(report_id);

CREATE TABLE IF NOT EXISTS family_genetic_impacts (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    gene TEXT NOT NULL,
    normal_alleles TEXT NOT NULL DEFAULT '',
    your_result TEXT NOT NULL DEFAULT '',
    health_impact TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_family_impacts_report ON family_genetic_impacts(report_id);

-- Genomic analysis table: category -> subcategory -> gene rows
CREATE TABLE IF NOT EXISTS gene_test_results (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    category TEXT NOT NULL,
    subcategory TEXT NOT NULL DEFAULT '',
    gene_name TEXT NOT NULL,
    result TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_gene_results_report ON gene_test_results(report_id);

CREATE TABLE IF NOT EXISTS health_summary_entries (
    id TEXT PRIMARY KEY,
    report_id TEXT NOT NULL,
    section TEXT NOT NULL,               -- 'strengths' | 'improvements'
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (report_id) REFERENCES reports(id)
);

CREATE INDEX IF NOT EXISTS idx_health_summary_report ON health_summary_entries(report_id);

-- ============================================================================
-- SHARE TOKENS
-- ============================================================================

-- Revoked rows are kept (is_active=0), never deleted
CREATE TABLE IF NOT EXISTS share_tokens (
    id TEXT PRIMARY KEY,                 -- uuid
    token TEXT NOT NULL UNIQUE,          -- encrypted payload, also the lookup key
    report_id TEXT NOT NULL,
    patient_id TEXT NOT NULL,
    password_hash TEXT,                  -- NULL for public links
    expires_at INTEGER,                  -- unix timestamp, NULL = never
    max_views INTEGER,                   -- NULL = unlimited
    view_count INTEGER NOT NULL DEFAULT 0,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_by TEXT,                     -- user id, NULL once user rows age out
    created_at INTEGER NOT NULL,
    last_accessed_at INTEGER,
    FOREIGN KEY (report_id) REFERENCES reports(id),
    FOREIGN KEY (patient_id) REFERENCES patients(id)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_share_tokens_token ON share_tokens(token);
CREATE INDEX IF NOT EXISTS idx_share_tokens_report ON share_tokens(report_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_share_tokens_patient ON share_tokens(patient_id, created_at DESC);

-- ============================================================================
-- AUDIT LOG
-- ============================================================================

-- Append-only for immutability
CREATE TABLE IF NOT EXISTS audit_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp INTEGER NOT NULL,
    action TEXT NOT NULL,
    ip_address TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    details_json TEXT,
    created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_log(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_log(action);
CREATE INDEX IF NOT EXISTS idx_audit_email ON audit_log(email);
CREATE INDEX IF NOT EXISTS idx_audit_email_timestamp ON audit_log(email, timestamp DESC);
`
}

// ApplyPragmas applies all SQLite pragmas from constants.SQLitePragmas
// Must be called immediately after opening any database connection
func ApplyPragmas(db *sql.DB) error {
	for _, pragma := range constants.SQLitePragmas {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}
