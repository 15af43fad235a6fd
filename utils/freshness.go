package common

import (
	"fmt"
	"os"
)

// CheckTableFreshness compares modification times of the scoring table and the
// databases it was built from. A database newer than the table means the table is stale.
func CheckTableFreshness(tableFile string, dbFiles ...string) error {
	tableInfo, err := os.Stat(tableFile)
	if err != nil {
		return fmt.Errorf("failed to stat scoring table: %w", err)
	}

	for _, db := range dbFiles {
		dbInfo, err := os.Stat(db)
		if err != nil {
			return fmt.Errorf("failed to stat database: %w", err)
		}
		if dbInfo.ModTime().After(tableInfo.ModTime()) {
			return fmt.Errorf("%s was modified after %s. Scoring table may be stale, consider rebuilding it",
				db, tableFile)
		}
	}
	return nil
}
