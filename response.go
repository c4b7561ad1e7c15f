package walletapp

import (
	"github.com/skythen/apdu"
)

// Response is the outcome of one dispatch. Data is only meaningful when
// Status is StatusOK.
type Response struct {
	Status StatusWord
	Data   []byte
}

// NewResponse packages a handler result. A failure never carries data.
func NewResponse(data []byte, err error) Response {

	status := StatusFor(err)

	if status != StatusOK {
		return Response{Status: status}
	}

	return Response{Status: status, Data: data}

}

func (r Response) OK() bool {
	return r.Status == StatusOK
}

// Bytes encodes the response as data followed by SW1 SW2.
func (r Response) Bytes() []byte {

	rapdu := apdu.Rapdu{Data: r.Data, SW1: r.Status.SW1(), SW2: r.Status.SW2()}

	bytes, err := rapdu.Bytes()

	if err != nil {
		// Only reachable when Data exceeds the extended response limit.
		return []byte{StatusExecutionError.SW1(), StatusExecutionError.SW2()}
	}

	return bytes

}

// parseResponse splits a raw response into data and status word.
func parseResponse(raw []byte) (Response, error) {

	rapdu, err := apdu.ParseRapdu(raw)

	if err != nil {
		return Response{}, err
	}

	status := StatusWord(uint16(rapdu.SW1)<<8 | uint16(rapdu.SW2))

	return Response{Status: status, Data: rapdu.Data}, nil

}
