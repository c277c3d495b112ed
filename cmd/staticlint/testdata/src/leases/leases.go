package leases

import "errors"

type Lease struct{ Port int }

func (l *Lease) Release() error { return nil }

type Launcher struct{}

func (Launcher) Launch() (*Lease, error) { return &Lease{}, nil }

type Rocket struct{}

func (Rocket) Launch() (int, error) { return 0, nil }

func deferred(l Launcher) error {
	lease, err := l.Launch()
	if err != nil {
		return err
	}
	defer lease.Release()
	return nil
}

func deferredClosure(l Launcher) error {
	lease, err := l.Launch()
	if err != nil {
		return err
	}
	defer func() {
		if err := lease.Release(); err != nil {
			panic(err)
		}
	}()
	return nil
}

func handedOff(l Launcher) (*Lease, error) {
	lease, err := l.Launch()
	if err != nil {
		return nil, err
	}
	return lease, nil
}

func forgotten(l Launcher) int {
	lease, _ := l.Launch() // want "lease from Launch is not released with defer"
	return lease.Port
}

func releasedWithoutDefer(l Launcher) error {
	lease, err := l.Launch() // want "lease from Launch is not released with defer"
	if err != nil {
		return err
	}
	return lease.Release()
}

func discarded(l Launcher) error {
	_, err := l.Launch() // want "result of Launch is discarded and never released"
	return err
}

func insideClosure(l Launcher) func() {
	return func() {
		lease, _ := l.Launch() // want "lease from Launch is not released with defer"
		_ = lease
	}
}

func notALease(r Rocket) error {
	_, err := r.Launch()
	if err != nil {
		return errors.New("no liftoff")
	}
	return nil
}
