package domain

// Table is a mongo collection name.
type Table string

const (
	TableAssets         Table = "assets"
	TableProperties     Table = "properties"
	TableClassTemplates Table = "class_templates"
	TableAsks           Table = "asks"
	TableBids           Table = "bids"
	TableSaleClasses    Table = "sale_classes"
	TableSaleEngine     Table = "sale_engine"
	TableSettings       Table = "settings"
	TableBalances       Table = "balances"
	TableAccounts       Table = "accounts"
	TableActivities     Table = "activities"
	TableCounters       Table = "counters"
)
