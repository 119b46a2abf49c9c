package main

import (
	"log"

	"github.com/syndtr/gocapability/capability"
)

// warnIfMissingDriverCaps checks for the capability the rockchip_ebc
// ioctl path needs and logs a warning rather than failing outright —
// a misconfigured system should still come up serving the command
// stream, just unable to reach the real panel. Adapted from the
// teacher's capability-probing idiom (getCurrentCaps/hasCapSysResource).
func warnIfMissingDriverCaps() {
	caps, err := capability.NewPid2(0)
	if err != nil {
		log.Printf("Could not get self caps: %+v\n", err)
		return
	}
	if err := caps.Load(); err != nil {
		log.Printf("Could not load self caps: %+v\n", err)
		return
	}

	if !caps.Get(capability.EFFECTIVE, capability.CAP_SYS_ADMIN) {
		log.Println("Warning: missing CAP_SYS_ADMIN; rockchip_ebc ioctls may fail")
	}
}
