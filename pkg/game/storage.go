package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// StorageAppName gdata 存储目录名
const StorageAppName = "mathtd"

// OpenStorage 打开 gdata 跨平台存储
// 打开失败时返回 nil，背包和排行榜随后以仅内存模式运行
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[Storage] Warning: Failed to open gdata storage %q: %v (progress will not be saved)", appName, err)
		return nil
	}

	log.Printf("[Storage] gdata storage opened for %q", appName)
	return manager
}
