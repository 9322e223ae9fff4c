package store

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id                     TEXT PRIMARY KEY,
    source                 TEXT NOT NULL,
    external_id            TEXT NOT NULL,
    name                   TEXT NOT NULL,
    description            TEXT NOT NULL DEFAULT '',
    category               TEXT NOT NULL DEFAULT '',
    target_demographic     TEXT NOT NULL DEFAULT '',
    source_url             TEXT NOT NULL DEFAULT '',
    image_urls             TEXT NOT NULL DEFAULT '[]',
    key_features           TEXT NOT NULL DEFAULT '[]',
    pain_points            TEXT NOT NULL DEFAULT '[]',
    cost_price             REAL NOT NULL DEFAULT 0,
    suggested_retail_price REAL NOT NULL DEFAULT 0,
    original_price         REAL NOT NULL DEFAULT 0,
    shipping_weight        REAL NOT NULL DEFAULT 0,
    google_trends_growth   REAL NOT NULL DEFAULT 0,
    sales_velocity         REAL NOT NULL DEFAULT 0,
    social_momentum        REAL NOT NULL DEFAULT 0,
    ad_library_count       REAL NOT NULL DEFAULT 0,
    shopify_store_count    REAL NOT NULL DEFAULT 0,
    amazon_seller_count    REAL NOT NULL DEFAULT 0,
    trend_score            INTEGER,
    competition_score      INTEGER,
    margin_score           INTEGER,
    overall_score          INTEGER,
    is_hot_product         BOOLEAN NOT NULL DEFAULT 0,
    is_active              BOOLEAN NOT NULL DEFAULT 1,
    first_seen_at          DATETIME NOT NULL,
    updated_at             DATETIME NOT NULL,
    scored_at              DATETIME,
    alerted_at             DATETIME,
    UNIQUE(source, external_id)
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_overall ON products(overall_score);
CREATE INDEX IF NOT EXISTS idx_products_trend ON products(trend_score);
CREATE INDEX IF NOT EXISTS idx_products_first_seen ON products(first_seen_at);

CREATE TABLE IF NOT EXISTS score_snapshots (
    id                     INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id             TEXT NOT NULL REFERENCES products(id),
    trend_score            INTEGER NOT NULL,
    competition_score      INTEGER NOT NULL,
    margin_score           INTEGER NOT NULL,
    overall_score          INTEGER NOT NULL,
    google_trends_growth   REAL NOT NULL DEFAULT 0,
    social_momentum        REAL NOT NULL DEFAULT 0,
    ad_library_count       REAL NOT NULL DEFAULT 0,
    shopify_store_count    REAL NOT NULL DEFAULT 0,
    recorded_at            DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_product ON score_snapshots(product_id);
CREATE INDEX IF NOT EXISTS idx_snapshots_recorded ON score_snapshots(recorded_at);

CREATE TABLE IF NOT EXISTS ad_creatives (
    id             TEXT PRIMARY KEY,
    product_id     TEXT NOT NULL REFERENCES products(id),
    type           TEXT NOT NULL,
    platform       TEXT NOT NULL,
    framework      TEXT NOT NULL DEFAULT '',
    headline       TEXT NOT NULL DEFAULT '',
    primary_text   TEXT NOT NULL DEFAULT '',
    description    TEXT NOT NULL DEFAULT '',
    call_to_action TEXT NOT NULL DEFAULT '',
    image_prompt   TEXT NOT NULL DEFAULT '',
    video_script   TEXT NOT NULL DEFAULT '',
    position       INTEGER NOT NULL DEFAULT 0,
    generated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_creatives_product ON ad_creatives(product_id);

CREATE TABLE IF NOT EXISTS saved_products (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    product_id TEXT NOT NULL REFERENCES products(id),
    notes      TEXT NOT NULL DEFAULT '',
    saved_at   DATETIME NOT NULL,
    UNIQUE(user_id, product_id)
);

CREATE INDEX IF NOT EXISTS idx_saved_user ON saved_products(user_id, saved_at);
`
