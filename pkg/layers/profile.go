package layers

// Profile is the set of profile.d scripts a layer contributes, filename to
// script body.
type Profile struct {
	Store
}

func NewProfile() *Profile {
	return &Profile{}
}

// ProfileFromPath loads every regular file directly under dir as a script.
// Subdirectories (per-process profiles) are ignored; a missing directory
// yields an empty profile.
func ProfileFromPath(dir string) (*Profile, error) {
	p := NewProfile()

	err := p.loadDir(dir, nil)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Add registers a script with the given name and body.
func (p *Profile) Add(name, script string) {
	p.Set(name, script)
}

// ToPath writes the scripts to dir, one file per script. Files already on
// disk that have no in-memory entry are not removed.
func (p *Profile) ToPath(dir string) error {
	return p.writeDir(dir)
}

func (p *Profile) Equal(o *Profile) bool {
	return p.Store.Equal(&o.Store)
}
