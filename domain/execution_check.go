package domain

import (
	"os"
	"os/exec"
	"time"
)

type TaskExecutionCheck interface {
	CanExecute() bool
	PostExecute()
}

type ModificationDateTaskExecutionCheck struct {
	UpdatedFile string
	CompareTo   string
}

// Check if modification time of the file 'UpdatedFile' is newer than the file 'CompareTo'
func (chk ModificationDateTaskExecutionCheck) CanExecute() bool {
	updatedFileStat, err := os.Stat(chk.UpdatedFile)
	if err != nil {
		return false
	}
	compareToStat, err := os.Stat(chk.CompareTo)
	if err != nil {
		// if the 'compareTo' file doesn't exist, then we consider we have to execute the task
		return os.IsNotExist(err)
	}

	return !updatedFileStat.ModTime().Before(compareToStat.ModTime())
}

func (chk ModificationDateTaskExecutionCheck) PostExecute() {
	currentTime := time.Now().Local()
	os.Chtimes(chk.CompareTo, currentTime, currentTime)
}

// MissingBinaryTaskExecutionCheck allows the task only when Binary cannot be found.
type MissingBinaryTaskExecutionCheck struct {
	Binary   string
	LookPath func(string) (string, error)
}

func (chk MissingBinaryTaskExecutionCheck) CanExecute() bool {
	lookPath := chk.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(chk.Binary)
	return err != nil
}

func (chk MissingBinaryTaskExecutionCheck) PostExecute() {}
