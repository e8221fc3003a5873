package iostore

import (
	"fmt"

	"emistat/schema"
)

// PrintStoreStatus prints store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Series Rows: %d\n", status.SeriesRows)
	fmt.Printf("Trained Models: %d\n", status.TrainedModels)
	if status.TrainedModels > 0 {
		fmt.Printf("Last Model Saved: %s\n", status.LastSavedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
