package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MatchDataSource --dir ../usecase --output usecase --outpkg usecasemock --filename match_data_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/matchreport --output domain/matchreport --outpkg matchreportmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/rawdata --output domain/rawdata --outpkg rawdatamock --filename repository_mock.go
