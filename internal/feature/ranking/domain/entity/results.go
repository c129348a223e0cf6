package entity

// RankedPage はランキング一覧の1ページです。
type RankedPage struct {
	Records     []Character
	TotalCount  int64
	CurrentPage int
	TotalPages  int
	HasMore     bool
}

// SearchResult はキーワード検索の結果です。
// ReturnedCount は返却件数で、一致した総件数ではありません。
type SearchResult struct {
	Matches           []Character
	ReturnedCount     int
	NormalizedKeyword string
}

// DeleteResult は削除結果です。
type DeleteResult struct {
	Success bool
	Message string
}

// ImportReport は一括インポートの集計です。
type ImportReport struct {
	Read     int
	Imported int
	Skipped  int
}
