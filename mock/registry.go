package mock

import "github.com/fwojciec/docparse"

var _ docparse.ProfileRegistry = (*ProfileRegistry)(nil)

// ProfileRegistry is a mock implementation of docparse.ProfileRegistry.
type ProfileRegistry struct {
	RegisterFn func(p *docparse.Profile) error
	GetFn      func(name string) (*docparse.Profile, error)
	ProfilesFn func() []*docparse.Profile
	DetectFn   func(pageURL, html string) *docparse.Profile
}

func (r *ProfileRegistry) Register(p *docparse.Profile) error {
	return r.RegisterFn(p)
}

func (r *ProfileRegistry) Get(name string) (*docparse.Profile, error) {
	return r.GetFn(name)
}

func (r *ProfileRegistry) Profiles() []*docparse.Profile {
	return r.ProfilesFn()
}

func (r *ProfileRegistry) Detect(pageURL, html string) *docparse.Profile {
	return r.DetectFn(pageURL, html)
}
