//go:build !linux || futex_portable

package futex

var defaultWaitQueue WaitQueue = &ParkingLot{}
