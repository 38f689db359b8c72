package main

import (
	"github.com/lowaltitude/ladiprep/cmdline"
)

func main() {
	cmdline.MustDispatch(sampleCmd, statsCmd, splitCmd, verifyCmd)
}
