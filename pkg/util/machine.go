package util

import (
	"os"
	"sync"

	"github.com/denisbrodbeck/machineid"
)

const instanceAppID = "note-graph-service"

var (
	instanceID     string
	instanceIDOnce sync.Once
)

// GetInstanceID 返回当前实例标识
// The raw machine id is never exposed; machineid hashes it with the app id.
// Falls back to the hostname when the platform has no machine id.
func GetInstanceID() string {
	instanceIDOnce.Do(func() {
		if id, err := machineid.ProtectedID(instanceAppID); err == nil && id != "" {
			instanceID = id[:12]
			return
		}
		if host, err := os.Hostname(); err == nil && host != "" {
			instanceID = host
			return
		}
		instanceID = "unknown"
	})
	return instanceID
}
