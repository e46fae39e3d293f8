package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager
// HOME 指向临时目录，测试结束后自动清理
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	appName := fmt.Sprintf("mathtd_test_%s_%d", testName, time.Now().UnixNano())
	manager := OpenStorage(appName)
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}
	return manager
}
