// Package median implements a sliding-window median filter.
//
// Only samples whose full window fits inside the input are filtered. The
// first and last windowSize/2 output samples are left at zero rather than
// padded or truncated.
package median
