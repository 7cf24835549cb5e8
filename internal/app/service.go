package app

import (
	"sourcemod-installer/internal/adapters"
	"sourcemod-installer/internal/ports"
)

type Service struct {
	Source  ports.PackageSourcePort
	FS      ports.TreeFSPort
	Pager   ports.PagerPort
	Confirm ports.ConfirmPort
}

func NewService() Service {
	return Service{
		Source:  adapters.NewSourceAdapter(),
		FS:      adapters.NewTreeFSAdapter(),
		Pager:   adapters.NewPagerAdapter(),
		Confirm: adapters.NewConfirmAdapter(),
	}
}
